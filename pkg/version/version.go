// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

// Package version holds the build version of tmpl.
package version

import (
	"fmt"

	goversion "github.com/hashicorp/go-version"
)

// Version is set via ldflags at build time.
var Version = "0.1.0"

// Satisfies reports an error unless Version meets constraint (e.g. ">= 0.1, < 1.0").
func Satisfies(constraint string) error {
	return satisfies(Version, constraint)
}

func satisfies(ver, constraint string) error {
	constraints, err := goversion.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("Parsing version constraint '%s': %s", constraint, err)
	}

	parsedVer, err := goversion.NewVersion(ver)
	if err != nil {
		return fmt.Errorf("Parsing version '%s': %s", ver, err)
	}

	if !constraints.Check(parsedVer) {
		return fmt.Errorf("tmpl version %s does not satisfy constraint '%s'", ver, constraint)
	}
	return nil
}
