package main

import (
	"strconv"
	"strings"

	"github.com/whitfin/efflux"
)

// Map splits each input line into whitespace-separated words and emits
// (word, 1) for every occurrence.
func Map(key, value string, ctx *efflux.Context) error {
	for _, word := range strings.Fields(value) {
		if err := ctx.Write(word, "1"); err != nil {
			return err
		}
	}
	return nil
}

// Reduce sums the occurrence counts for one word.
func Reduce(key string, values *efflux.Values, ctx *efflux.Context) error {
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
}

func main() {}
