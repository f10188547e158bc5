// compact-decode decodifica um arquivo .dump (um payload compacto por linha)
// e escreve cada resultado como uma linha JSON no stdout.
package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/radieske/exchange-market-data/internal/shared/logger"
	"github.com/radieske/exchange-market-data/pkg/compact"
)

const maxLine = 8 << 20

var errDecodeFailed = errors.New("one or more lines failed to decode")

func main() {
	kind := flag.String("kind", "prices", "markets | prices | complete")
	file := flag.String("file", "", "arquivo .dump (padrão: stdin)")
	keepGoing := flag.Bool("keep-going", false, "continua após erro de decodificação")
	level := flag.String("log-level", "warn", "nível de log (stderr)")
	flag.Parse()

	log, err := logger.New("compact-decode", "local", *level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer log.Sync()

	in := io.Reader(os.Stdin)
	if *file != "" {
		f, err := os.Open(*file)
		if err != nil {
			log.Fatal("open dump", zap.String("file", *file), zap.Error(err))
		}
		defer f.Close()
		in = f
	}

	out := bufio.NewWriter(os.Stdout)
	err = run(in, out, *kind, *keepGoing, log)
	if ferr := out.Flush(); ferr != nil && err == nil {
		err = ferr
	}
	if err != nil {
		log.Error("compact-decode failed", zap.Error(err))
		log.Sync()
		os.Exit(1)
	}
}

// decoderFor devolve a função de decodificação do tipo pedido
func decoderFor(kind string) (func(string) (any, error), error) {
	switch strings.ToLower(kind) {
	case "markets":
		return func(s string) (any, error) { return compact.DecodeMarkets(s) }, nil
	case "prices":
		return func(s string) (any, error) { return compact.DecodeMarketPrices(s) }, nil
	case "complete":
		return func(s string) (any, error) { return compact.DecodeCompleteMarketPrices(s) }, nil
	}
	return nil, fmt.Errorf("unknown kind %q", kind)
}

func run(in io.Reader, out io.Writer, kind string, keepGoing bool, log *zap.Logger) error {
	decode, err := decoderFor(kind)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 64*1024), maxLine)

	failed := false
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		v, err := decode(line)
		if err != nil {
			if !keepGoing {
				return fmt.Errorf("line %d: %w", lineNo, err)
			}
			log.Warn("decode failed", zap.Int("line", lineNo), zap.Error(err))
			failed = true
			continue
		}
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("line %d: encode: %w", lineNo, err)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	if failed {
		return errDecodeFailed
	}
	return nil
}
