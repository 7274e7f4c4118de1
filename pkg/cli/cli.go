package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/igolaizola/songgen"
	"github.com/igolaizola/songgen/pkg/cmd/cover"
	"github.com/igolaizola/songgen/pkg/cmd/export"
	"github.com/igolaizola/songgen/pkg/cmd/music"
	"github.com/igolaizola/songgen/pkg/cmd/songs"
	"github.com/igolaizola/songgen/pkg/cmd/web"
	"github.com/peterbourgon/ff/ffyaml"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"
)

const envPrefix = "SONGGEN"

func New(version, commit, date string) *ffcli.Command {
	fs := flag.NewFlagSet("songgen", flag.ExitOnError)

	return &ffcli.Command{
		ShortUsage: "songgen [flags] <subcommand>",
		FlagSet:    fs,
		Exec: func(context.Context, []string) error {
			return flag.ErrHelp
		},
		Subcommands: []*ffcli.Command{
			newVersionCommand(version, commit, date),
			newServeCommand(),
			newSongsCommand(),
			newMusicCommand(),
			newCoverCommand(),
			newExportCommand(),
		},
	}
}

func newVersionCommand(version, commit, date string) *ffcli.Command {
	return &ffcli.Command{
		Name:       "version",
		ShortUsage: "songgen version",
		ShortHelp:  "print version",
		Exec: func(ctx context.Context, args []string) error {
			v := version
			if v == "" {
				if buildInfo, ok := debug.ReadBuildInfo(); ok {
					v = buildInfo.Main.Version
				}
			}
			if v == "" {
				v = "dev"
			}
			versionFields := []string{v}
			if commit != "" {
				versionFields = append(versionFields, commit)
			}
			if date != "" {
				versionFields = append(versionFields, date)
			}
			fmt.Println(strings.Join(versionFields, " "))
			return nil
		},
	}
}

func options() []ff.Option {
	return []ff.Option{
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ffyaml.Parser),
		ff.WithEnvVarPrefix(envPrefix),
	}
}

func newServeCommand() *ffcli.Command {
	cmd := "serve"
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	_ = fs.String("config", "", "config file (optional)")

	cfg := &web.Config{}

	fs.BoolVar(&cfg.Debug, "debug", false, "debug mode")
	fs.StringVar(&cfg.Addr, "addr", ":3000", "address to listen on")
	fs.DurationVar(&cfg.Timeout, "timeout", 60*time.Second, "request timeout")
	fs.Float64Var(&cfg.Rate, "rate", 0, "requests per second allowed (0 disables the limit)")
	fs.IntVar(&cfg.Burst, "burst", 20, "requests allowed in a burst")
	fsListVar(fs, &cfg.CORSOrigins, "cors-origins", nil, "allowed CORS origins (comma separated), all when empty")
	fs.BoolVar(&cfg.Open, "open", false, "open the browser once the server is listening")

	return &ffcli.Command{
		Name:       cmd,
		ShortUsage: fmt.Sprintf("songgen %s [flags]", cmd),
		Options:    options(),
		ShortHelp:  "serve the song catalog over http",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			return web.Serve(ctx, cfg)
		},
	}
}

func newSongsCommand() *ffcli.Command {
	cmd := "songs"
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	_ = fs.String("config", "", "config file (optional)")

	cfg := &songs.Config{}

	fs.BoolVar(&cfg.Debug, "debug", false, "debug mode")
	fs.IntVar(&cfg.Page, "page", songgen.DefaultPage, "page number, starting at 1")
	fs.IntVar(&cfg.PageSize, "page-size", songgen.DefaultPageSize, "songs per page")
	fs.Int64Var(&cfg.Seed, "seed", songgen.DefaultSeed, "catalog seed")
	fs.StringVar(&cfg.Locale, "locale", songgen.DefaultLocale, "locale (en_US, ru_RU, uk_UA)")
	fs.Float64Var(&cfg.AvgLikes, "avg-likes", songgen.DefaultAvgLikes, "average likes per song (0-10)")
	fs.StringVar(&cfg.Output, "output", "", "output file (stdout when empty)")

	return &ffcli.Command{
		Name:       cmd,
		ShortUsage: fmt.Sprintf("songgen %s [flags]", cmd),
		Options:    options(),
		ShortHelp:  "print a page of songs as json",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			return songs.Run(ctx, cfg)
		},
	}
}

func newMusicCommand() *ffcli.Command {
	cmd := "music"
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	_ = fs.String("config", "", "config file (optional)")

	cfg := &music.Config{}

	fs.BoolVar(&cfg.Debug, "debug", false, "debug mode")
	fs.IntVar(&cfg.Index, "index", 1, "song index, starting at 1")
	fs.Int64Var(&cfg.Seed, "seed", songgen.DefaultSeed, "catalog seed")
	fs.StringVar(&cfg.Format, "format", "json", "output format (json, png, svg)")
	fs.StringVar(&cfg.Output, "output", "", "output file (stdout when empty, required for images)")

	return &ffcli.Command{
		Name:       cmd,
		ShortUsage: fmt.Sprintf("songgen %s [flags]", cmd),
		Options:    options(),
		ShortHelp:  "print the score of a song or draw its piano roll",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			return music.Run(ctx, cfg)
		},
	}
}

func newCoverCommand() *ffcli.Command {
	cmd := "cover"
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	_ = fs.String("config", "", "config file (optional)")

	cfg := &cover.Config{}

	fs.BoolVar(&cfg.Debug, "debug", false, "debug mode")
	fs.IntVar(&cfg.Index, "index", 1, "song index, starting at 1")
	fs.Int64Var(&cfg.Seed, "seed", songgen.DefaultSeed, "catalog seed")
	fs.StringVar(&cfg.Locale, "locale", songgen.DefaultLocale, "locale (en_US, ru_RU, uk_UA)")
	fs.IntVar(&cfg.Size, "size", songgen.DefaultCoverSize, "image size in pixels")
	fs.StringVar(&cfg.Format, "format", "png", "image format (png, jpg)")
	fs.StringVar(&cfg.Output, "output", "", "output file (cover-<index>.<format> when empty)")

	return &ffcli.Command{
		Name:       cmd,
		ShortUsage: fmt.Sprintf("songgen %s [flags]", cmd),
		Options:    options(),
		ShortHelp:  "draw the cover of a song",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			return cover.Run(ctx, cfg)
		},
	}
}

func newExportCommand() *ffcli.Command {
	cmd := "export"
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	_ = fs.String("config", "", "config file (optional)")

	cfg := &export.Config{}

	fs.BoolVar(&cfg.Debug, "debug", false, "debug mode")
	fs.IntVar(&cfg.Page, "page", songgen.DefaultPage, "first page to export")
	fs.IntVar(&cfg.PageSize, "page-size", songgen.DefaultPageSize, "songs per page")
	fs.IntVar(&cfg.Pages, "pages", 1, "number of pages to export")
	fs.Int64Var(&cfg.Seed, "seed", songgen.DefaultSeed, "catalog seed")
	fs.StringVar(&cfg.Locale, "locale", songgen.DefaultLocale, "locale (en_US, ru_RU, uk_UA)")
	fs.Float64Var(&cfg.AvgLikes, "avg-likes", songgen.DefaultAvgLikes, "average likes per song (0-10)")
	fs.StringVar(&cfg.Format, "format", "csv", "file format (csv, json)")
	fs.StringVar(&cfg.Name, "name", "", "stored file name (songs-<ulid>.<format> when empty)")
	fs.StringVar(&cfg.FSType, "fs-type", "local", "fs type (local, s3)")
	fs.StringVar(&cfg.FSConn, "fs-conn", ".", "path for local, key:secret@bucket.region for s3")

	return &ffcli.Command{
		Name:       cmd,
		ShortUsage: fmt.Sprintf("songgen %s [flags]", cmd),
		Options:    options(),
		ShortHelp:  "store pages of songs as csv or json",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			return export.Run(ctx, cfg)
		},
	}
}

type listValue struct {
	v *[]string
}

func (l *listValue) String() string {
	if l.v == nil {
		return ""
	}
	return strings.Join(*l.v, ",")
}

func (l *listValue) Set(value string) error {
	if l.v == nil {
		return errors.New("nil list reference")
	}
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		*l.v = append(*l.v, item)
	}
	return nil
}

func fsListVar(fs *flag.FlagSet, p *[]string, name string, value []string, usage string) {
	*p = value
	fs.Var(&listValue{p}, name, usage)
}
