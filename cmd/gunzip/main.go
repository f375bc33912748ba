// Copyright 2021 Cosmos Nicolaou. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Command gunzip decompresses a single gzip file.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/schollz/progressbar/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/cloudriff/ungzip"
)

var (
	outputFile     string
	verifyChecksum bool
	showProgress   bool
)

func main() {
	root := &cobra.Command{
		Use:   "gunzip <file>.gz",
		Short: "decompress a gzip file",
		Args:  cobra.ExactArgs(1),
		RunE:  runGunzip,
	}
	root.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default: input name with .gz stripped)")
	root.Flags().BoolVar(&verifyChecksum, "verify-checksum", false, "verify each member's CRC-32 and ISIZE trailer")
	root.Flags().BoolVar(&showProgress, "progress", false, "display a progress bar while decompressing")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runGunzip(cmd *cobra.Command, args []string) error {
	inputName := args[0]
	out := outputFile
	if out == "" {
		out = strings.TrimSuffix(inputName, ".gz")
		if out == inputName {
			return fmt.Errorf("gunzip: %s does not end in .gz; use --output to name the result", inputName)
		}
	}

	in, err := os.Open(inputName)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	outFile, err := os.Create(out)
	if err != nil {
		return err
	}

	var opts []ungzip.ReaderOption
	opts = append(opts, optionalChecksumVerification()...)

	var bar *progressbar.ProgressBar
	var reader io.Reader = in
	if showProgress {
		isTTY := term.IsTerminal(int(os.Stdout.Fd()))
		barWr := os.Stdout
		if !isTTY {
			barWr = os.Stderr
		}
		bar = progressbar.NewOptions64(info.Size(),
			progressbar.OptionSetBytes64(info.Size()),
			progressbar.OptionSetWriter(barWr),
			progressbar.OptionSetPredictTime(true))
		reader = &progressReader{r: in, bar: bar}
	}

	err = ungzip.Decompress(reader, outFile, opts...)
	closeErr := outFile.Close()
	if err != nil {
		os.Remove(out)
		return err
	}
	if closeErr != nil {
		os.Remove(out)
		return closeErr
	}
	if bar != nil {
		fmt.Fprintln(os.Stdout)
	}
	return nil
}

func optionalChecksumVerification() []ungzip.ReaderOption {
	if !verifyChecksum {
		return nil
	}
	return []ungzip.ReaderOption{ungzip.WithChecksumVerification()}
}

// progressReader advances a progress bar by the number of bytes read
// from the underlying input, mirroring how the teacher's progressBar
// function advances its bar from block-completion events rather than
// assuming the bar type itself satisfies io.Writer.
type progressReader struct {
	r   io.Reader
	bar *progressbar.ProgressBar
}

func (p *progressReader) Read(buf []byte) (int, error) {
	n, err := p.r.Read(buf)
	if n > 0 {
		p.bar.Add64(int64(n))
	}
	return n, err
}
