// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/ik5/sfxkit/catalog"
	"github.com/ik5/sfxkit/preview"
	"github.com/ik5/sfxkit/store"
	"github.com/ik5/sfxkit/studio"
	"github.com/ik5/sfxkit/transform"
)

type command struct {
	help string
	run  func(ctx context.Context, a *app, args []string) error
}

var commandOrder = []string{
	"catalog", "export", "mix", "preview", "save", "list", "delete", "variants", "categories",
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"catalog":    {"list built-in sounds", runCatalog},
		"export":     {"render one sound to a WAV file", runExport},
		"mix":        {"mix layers (sound[@volume[:delay]]) to a stereo WAV file", runMix},
		"preview":    {"play a sound or a mix on the audio device", runPreview},
		"save":       {"render and store a customized sound", runSave},
		"list":       {"list the user's saved sounds", runList},
		"delete":     {"delete a saved sound", runDelete},
		"variants":   {"render subtle variations of a sound", runVariants},
		"categories": {"list, add, rename or remove user categories", runCategories},
	}
}

var errUsage = errors.New("invalid arguments")

// paramFlags registers the transform flags on fs.
func paramFlags(fs *flag.FlagSet) *transform.Params {
	p := transform.DefaultParams()
	fs.Float64Var(&p.Volume, "volume", p.Volume, "Volume percent (0-100)")
	fs.Float64Var(&p.Pitch, "pitch", p.Pitch, "Pitch in semitones (-24 to 24)")
	fs.Float64Var(&p.Speed, "speed", p.Speed, "Speed percent (50-200)")
	fs.Float64Var(&p.Duration, "duration", p.Duration, "Duration percent (50-200)")
	return &p
}

// sound resolves a catalog id, falling back to treating arg as a locator.
func (a *app) sound(arg string) catalog.Sound {
	if s, err := a.catalog.Sound(arg); err == nil {
		return s
	}
	name := strings.TrimSuffix(filepath.Base(arg), filepath.Ext(arg))
	return catalog.Sound{ID: name, Name: name, Path: arg}
}

// layers parses sound[@volume[:delay]] arguments. Delay is in seconds.
func (a *app) layers(args []string) ([]catalog.LayerRef, error) {
	out := make([]catalog.LayerRef, 0, len(args))
	for _, arg := range args {
		ref := catalog.LayerRef{Volume: 100}

		name, opts, found := strings.Cut(arg, "@")
		if found {
			vol, delay, hasDelay := strings.Cut(opts, ":")
			v, err := strconv.ParseFloat(vol, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: layer %q volume: %w", errUsage, arg, err)
			}
			ref.Volume = v
			if hasDelay {
				d, err := strconv.ParseFloat(delay, 64)
				if err != nil {
					return nil, fmt.Errorf("%w: layer %q delay: %w", errUsage, arg, err)
				}
				ref.Delay = d
			}
		}
		ref.Sound = a.sound(name)
		out = append(out, ref)
	}
	return out, nil
}

func (a *app) requireUser() error {
	if a.user == "" {
		return fmt.Errorf("%w: -user or SFX_USER is required", studio.ErrNoUser)
	}
	return nil
}

func runCatalog(_ context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("catalog", flag.ExitOnError)
	category := fs.String("category", "", "Only sounds in this category")
	tag := fs.String("tag", "", "Only sounds with this tag")
	fs.Parse(args)

	sounds := a.catalog.All()
	switch {
	case *category != "":
		sounds = a.catalog.InCategory(*category)
	case *tag != "":
		sounds = a.catalog.WithTag(*tag)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPATH\tTAGS")
	for _, s := range sounds {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", s.ID, s.Name, s.Category, s.Path, strings.Join(s.Tags, ","))
	}
	return w.Flush()
}

func runExport(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	p := paramFlags(fs)
	out := fs.String("o", "", "Output WAV file (default <sound>.wav)")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("%w: export takes one sound", errUsage)
	}
	sound := a.sound(fs.Arg(0))

	data, err := a.studio.Export(ctx, sound, *p)
	if err != nil {
		return err
	}
	return writeOutput(*out, sound.ID+".wav", data)
}

func runMix(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("mix", flag.ExitOnError)
	out := fs.String("o", "mix.wav", "Output WAV file")
	fs.Parse(args)

	layers, err := a.layers(fs.Args())
	if err != nil {
		return err
	}

	data, err := a.studio.ExportComposition(ctx, layers)
	if err != nil {
		return err
	}
	return writeOutput(*out, "mix.wav", data)
}

func runPreview(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("preview", flag.ExitOnError)
	p := paramFlags(fs)
	mix := fs.Bool("mix", false, "Treat arguments as mix layers")
	channels := fs.Int("channels", cfg.PreviewChannels, "Output channels (1 or 2)")
	fs.Parse(args)

	if fs.NArg() == 0 || (!*mix && fs.NArg() != 1) {
		return fmt.Errorf("%w: preview takes one sound, or layers with -mix", errUsage)
	}

	out, err := preview.NewOtoOutput(a.mix.SampleRate, *channels, 0)
	if err != nil {
		return err
	}
	session := preview.NewSession(out, preview.WithObserver(func(key string, st preview.State) {
		log.Printf("preview %s: %s", key, st)
	}))
	defer session.Close()

	st := studio.New(a.decoder, a.records, a.blobs,
		studio.WithSession(session),
		studio.WithMixOptions(a.mix),
		studio.WithWorkers(cfg.DecodeWorkers),
	)

	var h *preview.Handle
	if *mix {
		layers, err := a.layers(fs.Args())
		if err != nil {
			return err
		}
		h, err = st.PreviewComposition(ctx, "mix", layers)
		if err != nil {
			return err
		}
	} else {
		h, err = st.PreviewSound(ctx, a.sound(fs.Arg(0)), *p)
		if err != nil {
			return err
		}
	}

	select {
	case <-h.Done():
	case <-ctx.Done():
		st.StopAll()
	}
	return nil
}

func runSave(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("save", flag.ExitOnError)
	p := paramFlags(fs)
	name := fs.String("name", "", "Saved sound name")
	category := fs.String("category", "", "User category id")
	mix := fs.Bool("mix", false, "Treat arguments as mix layers")
	fs.Parse(args)

	if err := a.requireUser(); err != nil {
		return err
	}

	var (
		rec store.Record
		err error
	)
	if *mix {
		layers, lerr := a.layers(fs.Args())
		if lerr != nil {
			return lerr
		}
		rec, err = a.studio.SaveComposition(ctx, a.user, layers, *name, *category)
	} else {
		if fs.NArg() != 1 {
			return fmt.Errorf("%w: save takes one sound, or layers with -mix", errUsage)
		}
		rec, err = a.studio.SaveCustomization(ctx, a.user, a.sound(fs.Arg(0)), *p, *name, *category)
	}
	if err != nil {
		return err
	}

	fmt.Printf("saved %s (%s)\n", rec.SoundID, rec.Sound.Path)
	return nil
}

func runList(ctx context.Context, a *app, _ []string) error {
	if err := a.requireUser(); err != nil {
		return err
	}

	sounds, err := a.records.UserSavedSounds(ctx, a.user)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tKIND\tPATH")
	for _, s := range sounds {
		kind := "custom"
		if s.IsComposition() {
			kind = fmt.Sprintf("%d layers", len(s.Layers))
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", s.ID, s.Name, s.CategoryID, kind, s.Path)
	}
	return w.Flush()
}

func runDelete(ctx context.Context, a *app, args []string) error {
	if err := a.requireUser(); err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: delete takes sound ids", errUsage)
	}

	for _, id := range args {
		if err := a.studio.DeleteSound(ctx, a.user, id); err != nil {
			return err
		}
		fmt.Printf("deleted %s\n", id)
	}
	return nil
}

func runVariants(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("variants", flag.ExitOnError)
	p := paramFlags(fs)
	n := fs.Int("n", 5, "Number of variants")
	dir := fs.String("dir", ".", "Output directory")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("%w: variants takes one sound", errUsage)
	}
	sound := a.sound(fs.Arg(0))

	variants, err := a.studio.Variants(ctx, sound, *p, *n)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(*dir, 0o755); err != nil {
		return err
	}
	for i, v := range variants {
		name := filepath.Join(*dir, fmt.Sprintf("%s-%d.wav", sound.ID, i+1))
		if err := os.WriteFile(name, v.WAV, 0o644); err != nil {
			return err
		}
		fmt.Printf("%s\tvolume=%.1f pitch=%.2f speed=%.1f\n", name, v.Params.Volume, v.Params.Pitch, v.Params.Speed)
	}
	return nil
}

func runCategories(ctx context.Context, a *app, args []string) error {
	if err := a.requireUser(); err != nil {
		return err
	}

	sub := "ls"
	if len(args) > 0 {
		sub, args = args[0], args[1:]
	}

	switch {
	case sub == "ls" && len(args) == 0:
		cats, err := a.records.UserCategories(ctx, a.user)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tCREATED")
		for _, c := range cats {
			fmt.Fprintf(w, "%s\t%s\t%s\n", c.ID, c.Name, c.CreatedAt.Format(time.RFC3339))
		}
		return w.Flush()

	case sub == "add" && len(args) == 1:
		c, err := a.records.CreateCategory(ctx, a.user, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("created %s\n", c.ID)

	case sub == "rename" && len(args) == 2:
		if _, err := a.records.UpdateCategory(ctx, a.user, args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("renamed %s\n", args[0])

	case sub == "rm" && len(args) == 1:
		if err := a.records.DeleteCategory(ctx, a.user, args[0]); err != nil {
			return err
		}
		fmt.Printf("removed %s\n", args[0])

	default:
		return fmt.Errorf("%w: categories [ls | add <name> | rename <id> <name> | rm <id>]", errUsage)
	}
	return nil
}

// writeOutput writes data to name, or to fallback when name is empty.
// "-" writes to stdout.
func writeOutput(name, fallback string, data []byte) error {
	if name == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if name == "" {
		name = fallback
	}
	if err := os.WriteFile(name, data, 0o644); err != nil {
		return err
	}
	log.Printf("wrote %s (%d bytes)", name, len(data))
	fmt.Println(name)
	return nil
}
