package efflux

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func wordcountMapper() Mapper {
	return MapperFunc(func(_, value string, ctx *Context) error {
		for _, word := range strings.Fields(value) {
			if err := ctx.Write(word, "1"); err != nil {
				return err
			}
		}
		return nil
	})
}

func wordcountReducer() Reducer {
	return ReducerFunc(func(key string, values *Values, ctx *Context) error {
		total := 0
		for values.Next() {
			n, err := strconv.Atoi(values.Value())
			if err != nil {
				return err
			}
			total += n
		}
		if err := values.Err(); err != nil {
			return err
		}
		return ctx.Write(key, strconv.Itoa(total))
	})
}

func TestRunLocalWordcount(t *testing.T) {
	in := strings.NewReader("hello world\nhello efflux\n")
	var out bytes.Buffer

	err := RunLocalOptions(wordcountMapper(), wordcountReducer(), in, &out, &Options{
		Side: &bytes.Buffer{},
		Conf: NewConfigurationFromEnv(nil),
	})

	require.NoError(t, err)
	require.Equal(t, "efflux\t1\nhello\t2\nworld\t1\n", out.String())
}

func TestRunLocalEmptyInput(t *testing.T) {
	var out bytes.Buffer

	err := RunLocalOptions(wordcountMapper(), wordcountReducer(), strings.NewReader(""), &out, &Options{
		Side: &bytes.Buffer{},
		Conf: NewConfigurationFromEnv(nil),
	})

	require.NoError(t, err)
	require.Zero(t, out.Len())
}

func TestRunLocalSortIsStableWithinKeys(t *testing.T) {
	// values for one key must reach the reducer in emission order
	in := strings.NewReader("k one\nk two\nk three\n")
	var out bytes.Buffer

	m := MapperFunc(func(_, value string, ctx *Context) error {
		fields := strings.Fields(value)
		return ctx.Write(fields[0], fields[1])
	})
	r := ReducerFunc(func(key string, values *Values, ctx *Context) error {
		var vals []string
		for values.Next() {
			vals = append(vals, values.Value())
		}
		if err := values.Err(); err != nil {
			return err
		}
		return ctx.Write(key, strings.Join(vals, ","))
	})

	err := RunLocalOptions(m, r, in, &out, &Options{
		Side: &bytes.Buffer{},
		Conf: NewConfigurationFromEnv(nil),
	})

	require.NoError(t, err)
	require.Equal(t, "k\tone,two,three\n", out.String())
}
