// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-getter/v2"
)

// ErrGetConfigFile is returned when the configuration file cannot be fetched.
var ErrGetConfigFile = errors.New("failed to get config file")

// Fetch retrieves the configuration document from the given source. Local
// paths are read directly; anything else is fetched with Hashicorp's
// go-getter, so the usual URL forms (git, http, s3, ...) work.
func Fetch(ctx context.Context, src string) ([]byte, error) {
	if src == "" {
		return nil, ErrGetConfigFile
	}

	if b, err := os.ReadFile(src); err == nil {
		return b, nil
	}

	tmpDir, err := os.MkdirTemp("", "gridsub-getter-*")
	if err != nil {
		return nil, errors.Join(ErrGetConfigFile, err)
	}

	defer os.RemoveAll(tmpDir) //nolint:errcheck

	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Join(ErrGetConfigFile, err)
	}

	dst := filepath.Join(tmpDir, "config.yaml")

	cli := getter.Client{
		DisableSymlinks: true,
	}

	req := &getter.Request{
		Src:     src,
		Dst:     dst,
		Pwd:     wd,
		GetMode: getter.ModeFile,
	}

	if _, err := cli.Get(ctx, req); err != nil {
		return nil, errors.Join(ErrGetConfigFile, err)
	}

	b, err := os.ReadFile(dst)
	if err != nil {
		return nil, errors.Join(ErrGetConfigFile, err)
	}

	return b, nil
}
