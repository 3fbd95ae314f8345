// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - The config command.

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/jeranaias/textanim/internal/config"
	"github.com/jeranaias/textanim/internal/util"
)

// HandleConfig dispatches config subcommands. show is the default.
func HandleConfig(args Args, w io.Writer) error {
	p := args.Parser("force")

	switch sub := p.Subcommand(); sub {
	case "", "show":
		return configShow(args, w)
	case "init":
		return configInit(args, p.BoolFlag("force"), w)
	case "path":
		path, err := configPath(args)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, path)
		return err
	case "get":
		key := p.Positional(1)
		if key == "" {
			return ErrMissingArgument("KEY", "textanim config get animation.effect")
		}
		return configGet(args, key, w)
	case "set":
		key, value := p.Positional(1), p.Positional(2)
		if key == "" || p.PositionalCount() < 3 {
			return ErrMissingArgument("KEY VALUE", "textanim config set animation.effect fade")
		}
		return configSet(args, key, value, w)
	default:
		return NewValidationErrorWithExample("config", sub, "unknown subcommand (show, init, path, get, set)", "textanim config show")
	}
}

func configPath(args Args) (string, error) {
	if args.ConfigPath != "" {
		return args.ConfigPath, nil
	}
	path, err := config.ConfigPathTOML()
	if err != nil {
		return "", NewCommandError("config", "path", "cannot locate home directory", err)
	}
	return path, nil
}

// configShow prints the effective configuration, env overrides included.
func configShow(args Args, w io.Writer) error {
	cfg, warnings, err := loadConfig(args)
	if err != nil {
		return err
	}
	printWarnings(warnings)

	if args.JSON {
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}
		return writeHighlighted(w, string(data)+"\n", "json", colorOutput(w, args))
	}
	data, err := config.EncodeTOML(cfg)
	if err != nil {
		return NewCommandError("config", "show", "cannot encode configuration", err)
	}
	return writeHighlighted(w, string(data), "toml", colorOutput(w, args))
}

func configInit(args Args, force bool, w io.Writer) error {
	path, err := configPath(args)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil && !force {
		return NewValidationErrorWithExample("config", path, "file already exists", "textanim config init --force")
	}
	if err := config.SaveTOML(config.Default(), path); err != nil {
		return NewCommandError("config", "init", path, err)
	}
	_, err = fmt.Fprintln(w, RenderConditional(SuccessStyle, "Wrote "+path))
	return err
}

func configGet(args Args, key string, w io.Writer) error {
	cfg, _, err := loadConfig(args)
	if err != nil {
		return err
	}
	v, err := cfg.Get(key)
	if err != nil {
		return unknownKeyError(key, err, "textanim config get ")
	}
	if args.JSON {
		return json.NewEncoder(w).Encode(map[string]interface{}{"key": key, "value": v})
	}
	_, err = fmt.Fprintln(w, v)
	return err
}

// unknownKeyError reports a bad key, suggesting the nearest known one.
func unknownKeyError(key string, err error, usage string) error {
	example := usage + "animation.effect"
	if s := SuggestConfigKey(key); s != "" {
		example = usage + s
	}
	return NewValidationErrorWithExample("key", key, err.Error(), example)
}

// configSet edits the file itself, so environment overrides are not
// written back.
func configSet(args Args, key, value string, w io.Writer) error {
	path, err := configPath(args)
	if err != nil {
		return err
	}

	cfg := config.Default()
	switch {
	case strings.HasSuffix(path, ".json"):
		err = config.LoadJSON(cfg, path)
	default:
		err = config.LoadTOML(cfg, path)
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return NewCommandError("config", "load", path, err)
	}

	if err := cfg.Set(key, value); err != nil {
		return unknownKeyError(key, err, "textanim config set ")
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return NewCommandError("config", "set", key, err)
	}
	if err := saveConfig(cfg, path); err != nil {
		return NewCommandError("config", "save", path, err)
	}
	_, err = fmt.Fprintln(w, RenderConditional(SuccessStyle, fmt.Sprintf("%s = %v", key, value)))
	return err
}

// saveConfig keeps the file's format: JSON for .json paths, TOML otherwise.
func saveConfig(cfg *config.Config, path string) error {
	if !strings.HasSuffix(path, ".json") {
		return config.SaveTOML(cfg, path)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return util.AtomicWriteFile(path, append(data, '\n'), 0o644)
}
