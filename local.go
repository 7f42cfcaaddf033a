package efflux

import (
	"bytes"
	"io"
	"sort"
	"strings"
)

// RunLocal executes a complete map/sort/reduce pipeline inside one process,
// standing in for the orchestrator when running off-Hadoop. The sort between
// the stages is stable and byte-ordered by key, mirroring the external sort
// contract reducers rely on.
func RunLocal(m Mapper, r Reducer, in io.Reader, out io.Writer) error {
	return RunLocalOptions(m, r, in, out, nil)
}

// RunLocalOptions is RunLocal with an explicit side channel and settings.
func RunLocalOptions(m Mapper, r Reducer, in io.Reader, out io.Writer, opts *Options) error {
	var base Options
	if opts != nil {
		base = *opts
	}
	conf := base.Conf
	if conf == nil {
		conf = NewConfiguration()
	}

	var intermediate bytes.Buffer

	mapOpts := base
	mapOpts.Input = in
	mapOpts.Output = &intermediate
	mapOpts.Conf = confForStage(conf, true)
	if err := NewJob(&mapOpts).RunMapper(m); err != nil {
		return err
	}

	// the shuffle keys on the map output separator
	mapDelim := NewDelimiters(mapOpts.Conf)
	shuffleCodec := Codec{inputSep: mapDelim.Output(), outputSep: mapDelim.Output()}

	sorted, err := sortByKey(intermediate.String(), shuffleCodec)
	if err != nil {
		return err
	}

	redOpts := base
	redOpts.Input = strings.NewReader(sorted)
	redOpts.Output = out
	redOpts.Conf = confForStage(conf, false)
	return NewJob(&redOpts).RunReducer(r)
}

func confForStage(conf *Configuration, ismap bool) *Configuration {
	out := conf.clone()
	if ismap {
		out.Insert("mapreduce.task.ismap", "true")
	} else {
		out.Insert("mapreduce.task.ismap", "false")
	}
	return out
}

// sortByKey is the simulated shuffle: a stable in-memory sort of mapper
// output lines by their decoded key.
func sortByKey(data string, codec Codec) (string, error) {
	type keyedLine struct {
		key  string
		line string
	}

	var entries []keyedLine
	for rest := data; len(rest) > 0; {
		line := rest
		if i := strings.IndexByte(rest, '\n'); i >= 0 {
			line, rest = rest[:i], rest[i+1:]
		} else {
			rest = ""
		}
		rec, err := codec.Decode(line)
		if err != nil {
			return "", err
		}
		entries = append(entries, keyedLine{key: rec.Key, line: line})
	}

	sort.SliceStable(entries, func(a, b int) bool { return entries[a].key < entries[b].key })

	var out strings.Builder
	out.Grow(len(data) + 1)
	for _, e := range entries {
		out.WriteString(e.line)
		out.WriteByte('\n')
	}
	return out.String(), nil
}
