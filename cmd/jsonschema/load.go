// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/evalschema/jsonschema"
	"github.com/goccy/go-yaml"
)

// readFile reads a document as JSON. Files named *.yaml or *.yml are
// converted from YAML. The name "-" reads stdin.
func readFile(stdin io.Reader, file string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if file == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(file)
	}
	if err != nil {
		return nil, err
	}
	return toJSON(file, data)
}

func toJSON(name string, data []byte) ([]byte, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		j, err := yaml.YAMLToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("converting YAML: %w", err)
		}
		return j, nil
	}
	return data, nil
}

// fileURI returns the file URL of the named file.
func fileURI(file string) (*url.URL, error) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return nil, err
	}
	return &url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}, nil
}

// parseFile parses the schema in file. Its base URI is the file's URL,
// so that relative references find neighboring files.
func parseFile(stdin io.Reader, file string, opts *jsonschema.Options) (*jsonschema.Schema, error) {
	data, err := readFile(stdin, file)
	if err != nil {
		return nil, err
	}
	o := *opts
	if file != "-" {
		u, err := fileURI(file)
		if err != nil {
			return nil, err
		}
		o.BaseURI = u.String()
	}
	return jsonschema.Parse(data, &o)
}

// A loader fetches schemas that references name but no registered document holds.
type loader struct {
	ctx    context.Context
	client *http.Client
	opts   *jsonschema.Options
	logger *slog.Logger
}

func (l *loader) load(u *url.URL) (*jsonschema.Schema, error) {
	l.logger.Info("loading schema", "uri", u)
	var (
		data []byte
		err  error
	)
	switch u.Scheme {
	case "file":
		data, err = os.ReadFile(filepath.FromSlash(u.Path))
	case "http", "https":
		data, err = l.fetch(u)
	default:
		return nil, fmt.Errorf("cannot load %s: unsupported scheme %q", u, u.Scheme)
	}
	if err != nil {
		return nil, err
	}
	if data, err = toJSON(u.Path, data); err != nil {
		return nil, err
	}
	o := *l.opts
	o.BaseURI = u.String()
	o.Registry = nil
	return jsonschema.Parse(data, &o)
}

func (l *loader) fetch(u *url.URL) ([]byte, error) {
	req, err := http.NewRequestWithContext(l.ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: %s", u, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// newRegistry returns a registry that loads unknown schemas with l and
// holds the schemas in files, where "-" is stdin. It reports every file that fails.
func newRegistry(l *loader, stdin io.Reader, files []string) (*jsonschema.Registry, error) {
	reg := jsonschema.NewRegistry(l.load)
	var errs []error
	for _, file := range files {
		s, err := parseFile(stdin, file, l.opts)
		if err == nil {
			err = reg.Register(s)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", file, err))
		}
	}
	return reg, errors.Join(errs...)
}
