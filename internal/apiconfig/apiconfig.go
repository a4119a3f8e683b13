// Copyright (c) 2021-2026 Rustam Gilyazov and Contributors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package apiconfig reads and writes the API limits configuration file.
// The file is TOML; absent keys keep their default values, unknown keys are
// an error.
package apiconfig

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/rusq/slackmcp/internal/network"
)

var ErrConfigInvalid = errors.New("config validation failed")

// Load reads, parses and validates the limits file.  Values omitted from
// the file remain at their defaults.
func Load(filename string) (network.Limits, error) {
	f, err := os.Open(filename)
	if err != nil {
		return network.Limits{}, err
	}
	defer f.Close()
	return load(f)
}

func load(r io.Reader) (network.Limits, error) {
	limits := network.DefLimits
	md, err := toml.NewDecoder(r).Decode(&limits)
	if err != nil {
		return network.Limits{}, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return network.Limits{}, fmt.Errorf("%w: unknown keys: %v", ErrConfigInvalid, undecoded)
	}
	if err := limits.Validate(); err != nil {
		if err := printErrors(os.Stderr, err); err != nil {
			return network.Limits{}, err
		}
		return network.Limits{}, ErrConfigInvalid
	}
	return limits, nil
}

// Save writes the limits to filename in TOML format.  The written file
// round-trips through Load.
func Save(filename string, limits network.Limits) error {
	if err := limits.Validate(); err != nil {
		return err
	}
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return save(f, limits)
}

func save(w io.Writer, limits network.Limits) error {
	return toml.NewEncoder(w).Encode(limits)
}

func printErrors(w io.Writer, err error) error {
	if err == nil {
		return nil
	}

	var wErr error
	var printErr = func(format string, a ...any) {
		if wErr != nil {
			return
		}
		_, wErr = fmt.Fprintf(w, format, a...)
	}

	printErr("Detected problems:\n")
	var vErr validator.ValidationErrors
	if !errors.As(err, &vErr) {
		return err
	}
	for i, entry := range vErr {
		printErr("\t%2d: %s\n", i+1, entry.Translate(network.OptErrTranslations))
	}
	return wErr
}
