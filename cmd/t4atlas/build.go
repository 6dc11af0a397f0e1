package main

import "os"
import "flag"
import "strconv"
import "runtime"
import "path/filepath"

import "github.com/pkg/errors"
import "github.com/sirupsen/logrus"
import "golang.org/x/sync/errgroup"

import "github.com/tinne26/t4atlas"
import "github.com/tinne26/t4atlas/emit"
import "github.com/tinne26/t4atlas/preview"

type buildConfig struct {
	outDir string
	pack t4atlas.PackConfig
	emit emit.Options
	writeBin bool
	writePNG bool
	scale int
}

func runBuild(args []string) int {
	var config buildConfig
	var ink uint
	config.emit = emit.DefaultOptions()

	flags := flag.NewFlagSet("build", flag.ContinueOnError)
	flags.StringVar(&config.outDir, "o", ".", "output directory")
	flags.IntVar(&config.pack.PageSize, "page", t4atlas.DefaultPageSize, "page width and height, in pixels")
	flags.UintVar(&ink, "ink", uint(t4atlas.DefaultInk), "4-bit value written for ink pixels")
	flags.StringVar(&config.emit.HeaderName, "header", config.emit.HeaderName, "runtime header included by generated headers")
	flags.StringVar(&config.emit.PixelFormat, "format", config.emit.PixelFormat, "texture format tag")
	flags.BoolVar(&config.writeBin, "bin", false, "also write a .t4a atlas file per font")
	flags.BoolVar(&config.writePNG, "png", false, "also write a PNG preview per page")
	flags.IntVar(&config.scale, "scale", 1, "PNG preview upscaling factor")
	jobs := flags.Int("j", runtime.NumCPU(), "max fonts processed in parallel")
	verbose := flags.Bool("v", false, "enable debug logging")
	err := flags.Parse(args)
	if err != nil { return 2 }

	logger := newLogger(*verbose)
	if flags.NArg() == 0 {
		logger.Error("no font description files given")
		return 2
	}
	if ink > 0x0F {
		logger.Errorf("ink value %d doesn't fit in 4 bits", ink)
		return 2
	}
	config.pack.Ink = uint8(ink)
	err = os.MkdirAll(config.outDir, 0755)
	if err != nil {
		logger.WithError(err).Error("can't create output directory")
		return 1
	}

	paths := flags.Args()
	descs := parseFonts(paths, *jobs, logger)
	failed := claimOutputNames(paths, descs, logger)

	// fonts share nothing once their output names are unique, so each
	// one is built independently and a failure only aborts its own font
	var group errgroup.Group
	group.SetLimit(max(*jobs, 1))
	for i, path := range paths {
		if descs[i] == nil { continue }
		desc, path := descs[i], path
		group.Go(func() error {
			err := buildFont(desc, path, &config, logger)
			if err != nil {
				logger.WithField("file", path).Error(err)
			}
			return err
		})
	}
	err = group.Wait()
	if err != nil || failed { return 1 }
	return 0
}

// Parses every description file. Entries for files that fail to
// parse are left nil, and the error is logged.
func parseFonts(paths []string, jobs int, logger *logrus.Logger) []*t4atlas.FontDescription {
	descs := make([]*t4atlas.FontDescription, len(paths))
	var group errgroup.Group
	group.SetLimit(max(jobs, 1))
	for i, path := range paths {
		i, path := i, path
		group.Go(func() error {
			desc, err := t4atlas.ParseFile(path)
			if err != nil {
				logger.WithField("file", path).Error(err)
				return err
			}
			descs[i] = desc
			return nil
		})
	}
	_ = group.Wait() // failures are the nil entries
	return descs
}

// Fonts write to files named after their identifier, so a font whose
// identifier was already taken by a previous argument is dropped.
// Returns whether any font failed, including parse failures.
func claimOutputNames(paths []string, descs []*t4atlas.FontDescription, logger *logrus.Logger) bool {
	var failed bool
	claimed := make(map[string]string, len(paths))
	for i, desc := range descs {
		if desc == nil {
			failed = true
			continue
		}
		base := emit.Identifier(desc.Name)
		if firstPath, taken := claimed[base]; taken {
			logger.WithFields(logrus.Fields{ "font": desc.Name, "file": paths[i] }).Errorf(
				"output name '%s' is already used by %s", base, firstPath,
			)
			descs[i] = nil
			failed = true
			continue
		}
		claimed[base] = paths[i]
	}
	return failed
}

func buildFont(desc *t4atlas.FontDescription, path string, config *buildConfig, logger *logrus.Logger) error {
	entry := logger.WithFields(logrus.Fields{ "font": desc.Name, "file": path })

	outside := desc.OutOfRange()
	if len(outside) > 0 {
		entry.WithField("first", t4atlas.FormatCodepoint(outside[0])).Warnf(
			"%d glyphs outside the range %s..%s won't be packed", len(outside),
			t4atlas.FormatCodepoint(desc.RangeStart), t4atlas.FormatCodepoint(desc.RangeEnd),
		)
	}

	atlas, err := t4atlas.Pack(desc, config.pack)
	if err != nil { return err }
	layout := atlas.Layout()
	entry = entry.WithFields(logrus.Fields{ "pages": atlas.PageCount(), "cells": layout.CellsPerPage })
	entry.Debugf("packed %d glyphs in %dx%d cells", len(desc.Glyphs) - len(outside), atlas.CellWidth, atlas.CellHeight)

	written, err := emit.WriteFiles(config.outDir, atlas, config.emit)
	if err != nil { return err }

	names := emit.NewNames(atlas.Name)
	if config.writeBin {
		binPath := filepath.Join(config.outDir, names.Base + ".t4a")
		err = writeFile(binPath, func(file *os.File) error { return atlas.Export(file) })
		if err != nil { return err }
		written = append(written, binPath)
	}
	if config.writePNG {
		for i := 0; i < atlas.PageCount(); i++ {
			pngPath := filepath.Join(config.outDir, names.Base + "_page" + strconv.Itoa(i) + ".png")
			err = writeFile(pngPath, func(file *os.File) error {
				return preview.WritePNG(file, atlas, i, config.scale)
			})
			if err != nil { return err }
			written = append(written, pngPath)
		}
	}

	for _, outPath := range written {
		entry.Debugf("wrote %s", outPath)
	}
	entry.Info("atlas built")
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	file, err := os.Create(path)
	if err != nil { return errors.Wrap(err, "creating output file") }
	err = write(file)
	if err != nil {
		_ = file.Close()
		_ = os.Remove(path)
		return errors.Wrapf(err, "writing %s", path)
	}
	return errors.Wrapf(file.Close(), "closing %s", path)
}
