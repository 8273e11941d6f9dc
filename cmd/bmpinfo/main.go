// ◄◄◄ tinybmp/cmd/bmpinfo/main.go ►►►
// Use of this code is governed by an MIT-style license that can
// be found in the README.md file.
//
// bmpinfo inspects BMP files: it prints parsed headers and dumps pixel
// data, either from memory or through the bounded streaming reader.
//

package main

import (
	"fmt"
	"os"

	"github.com/jcard0na/tinybmp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	rootCommand := &cobra.Command{
		Use:   "bmpinfo",
		Short: "Inspect BMP files",
	}

	infoCommand := &cobra.Command{
		Use:   "info <file>",
		Short: "Print the parsed header of a BMP file",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			raw := openSlice(args[0]).Raw()
			header := raw.Header()

			fmt.Printf("file size:        %d bytes\n", header.FileSize)
			fmt.Printf("dimensions:       %dx%d px\n", header.Width, header.Height)
			fmt.Printf("bit depth:        %d bpp\n", header.Bpp.Bits())
			fmt.Printf("color type:       %s\n", raw.ColorType())
			fmt.Printf("row order:        %s\n", header.RowOrder)
			fmt.Printf("image data start: %d\n", header.ImageDataStart)
			fmt.Printf("image data len:   %d bytes\n", header.ImageDataLen)
			fmt.Printf("bytes per row:    %d\n", header.BytesPerRow())
			if masks := header.ChannelMasks; masks != nil {
				fmt.Printf("channel masks:    r=%08x g=%08x b=%08x a=%08x\n",
					masks.Red, masks.Green, masks.Blue, masks.Alpha)
			}
			if table := raw.ColorTable(); table != nil {
				fmt.Printf("palette entries:  %d\n", table.Len())
			}
		},
	}
	rootCommand.AddCommand(infoCommand)

	var dumpRaw bool
	var dumpStream bool
	dumpCommand := &cobra.Command{
		Use:   "dump <file>",
		Short: "Dump the pixels of a BMP file",
		Long:  "Dump the pixels of a BMP file, one per line, in top-left-origin row-major order. With --stream the image data is pulled through a single one-row buffer instead of being held in memory.",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			var bmp *tinybmp.Bmp
			if dumpStream {
				bmp = openStream(args[0])
			} else {
				bmp = openSlice(args[0])
			}

			if dumpRaw {
				pixels, err := bmp.Raw().Pixels()
				if err != nil {
					log.Fatal().Err(err).Msg("failed to start pixel iteration")
				}
				for {
					px, ok := pixels.Next()
					if !ok {
						break
					}
					fmt.Printf("%d,%d %08x\n", px.Position.X, px.Position.Y, px.Color)
				}
				if err := pixels.Err(); err != nil {
					log.Fatal().Err(err).Msg("pixel data read failed")
				}
				return
			}

			pixels, err := bmp.Pixels()
			if err != nil {
				log.Fatal().Err(err).Msg("failed to start pixel iteration")
			}
			for {
				px, ok := pixels.Next()
				if !ok {
					break
				}
				c := px.Color
				fmt.Printf("%d,%d #%02x%02x%02x\n", px.Position.X, px.Position.Y, c.R, c.G, c.B)
			}
			if err := pixels.Err(); err != nil {
				log.Fatal().Err(err).Msg("pixel data read failed")
			}
		},
	}
	dumpCommand.Flags().BoolVar(&dumpRaw, "raw", false, "print raw pixel values (palette indices, packed bits)")
	dumpCommand.Flags().BoolVar(&dumpStream, "stream", false, "decode through the bounded streaming reader")
	rootCommand.AddCommand(dumpCommand)

	if err := rootCommand.Execute(); err != nil {
		os.Exit(1)
	}
}

func openSlice(path string) *tinybmp.Bmp {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("failed to read file")
	}
	bmp, err := tinybmp.FromSlice(data)
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("failed to parse BMP")
	}
	return bmp
}

// openStream parses the file through a StreamReader. The header is parsed
// first to learn the row stride, then the session is rebuilt with a chunk
// buffer of exactly one row.
func openStream(path string) *tinybmp.Bmp {
	f, err := os.Open(path)
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("failed to open file")
	}
	stat, err := f.Stat()
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("failed to stat file")
	}
	size := int(stat.Size())

	headerBuf := make([]byte, tinybmp.MaxHeaderRegionLen)
	probe, err := tinybmp.RawFromReader(tinybmp.NewStreamReader(f, size, nil), headerBuf)
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("failed to parse BMP")
	}

	rowBuf := make([]byte, probe.Header().BytesPerRow())
	bmp, err := tinybmp.FromReader(tinybmp.NewStreamReader(f, size, rowBuf), headerBuf)
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("failed to parse BMP")
	}
	return bmp
}
