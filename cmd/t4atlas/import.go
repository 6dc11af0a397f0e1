package main

import "os"
import "flag"
import "strings"
import "path/filepath"

import "github.com/pkg/errors"
import "golang.org/x/image/font/basicfont"

import "github.com/tinne26/t4atlas"
import "github.com/tinne26/t4atlas/facefont"

func runImport(args []string) int {
	flags := flag.NewFlagSet("import", flag.ContinueOnError)
	bdfPath := flags.String("bdf", "", "BDF font file to import")
	basic := flags.Bool("basic", false, "import the builtin 7x13 font")
	rangeStr := flags.String("range", "U+0020..U+007E", "codepoint range to import")
	name := flags.String("name", "", "font name (defaults to the BDF file name, or 'basic7x13')")
	outPath := flags.String("o", "", "output file (defaults to stdout)")
	binary := flags.Bool("binary", false, "write bitmaps with '0' and '1' instead of '.' and '#'")
	verbose := flags.Bool("v", false, "enable debug logging")
	err := flags.Parse(args)
	if err != nil { return 2 }

	logger := newLogger(*verbose)
	if (*bdfPath == "") == !*basic {
		logger.Error("exactly one of -bdf or -basic must be given")
		return 2
	}
	start, end, err := parseRange(*rangeStr)
	if err != nil {
		logger.WithError(err).Error("invalid -range")
		return 2
	}

	var desc *t4atlas.FontDescription
	if *basic {
		if *name == "" { *name = "basic7x13" }
		desc, err = facefont.FromFace(basicfont.Face7x13, *name, start, end)
	} else {
		if *name == "" {
			*name = strings.TrimSuffix(filepath.Base(*bdfPath), filepath.Ext(*bdfPath))
		}
		var data []byte
		data, err = os.ReadFile(*bdfPath)
		if err == nil {
			desc, err = facefont.FromBDF(data, *name, start, end)
		} else {
			err = errors.Wrap(err, "reading bdf font")
		}
	}
	if err != nil {
		logger.WithField("font", *name).Error(err)
		return 1
	}
	logger.WithField("font", desc.Name).Debugf("imported %d glyphs", len(desc.Glyphs))

	alphabet := t4atlas.AlphabetBlocks
	if *binary { alphabet = t4atlas.AlphabetBinary }
	if *outPath == "" {
		err = t4atlas.Format(os.Stdout, desc, alphabet)
	} else {
		err = writeFile(*outPath, func(file *os.File) error {
			return t4atlas.Format(file, desc, alphabet)
		})
	}
	if err != nil {
		logger.WithField("font", desc.Name).Error(err)
		return 1
	}
	return 0
}

func parseRange(str string) (rune, rune, error) {
	startStr, endStr, found := strings.Cut(str, "..")
	if !found { return 0, 0, errors.New("expected U+XXXX..U+YYYY, got '" + str + "'") }
	start, err := t4atlas.ParseCodepoint(startStr)
	if err != nil { return 0, 0, err }
	end, err := t4atlas.ParseCodepoint(endStr)
	if err != nil { return 0, 0, err }
	if start > end { return 0, 0, errors.New("range start can't exceed range end") }
	return start, end, nil
}
