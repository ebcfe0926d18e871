// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package datavalues

import (
	"fmt"
	"strings"

	"github.com/objcio/S01E210-building-a-template-language-member-expressions/pkg/template"
)

// KeySeparator splits a key path such as "site.author.name".
const KeySeparator = "."

// Merge deep-merges dictionaries from left to right. Nested dictionaries are
// merged key by key; any other value from a later dictionary replaces the
// earlier one. Inputs are not modified.
func Merge(dicts ...template.Dictionary) template.Dictionary {
	result := template.Dictionary{}
	for _, dict := range dicts {
		mergeInto(result, dict)
	}
	return result
}

func mergeInto(dst, src template.Dictionary) {
	for k, srcVal := range src {
		srcDict, srcIsDict := srcVal.(template.Dictionary)
		dstDict, dstIsDict := dst[k].(template.Dictionary)

		if srcIsDict && dstIsDict {
			merged := template.Dictionary{}
			mergeInto(merged, dstDict)
			mergeInto(merged, srcDict)
			dst[k] = merged
			continue
		}
		if srcIsDict {
			copied := template.Dictionary{}
			mergeInto(copied, srcDict)
			dst[k] = copied
			continue
		}
		dst[k] = srcVal
	}
}

// SetPath assigns val at a dotted key path inside dict, creating
// intermediate dictionaries as needed.
func SetPath(dict template.Dictionary, keyPath string, val template.Value) error {
	keyPieces := strings.Split(keyPath, KeySeparator)
	for _, piece := range keyPieces {
		if len(piece) == 0 {
			return fmt.Errorf("Expected key '%s' to not contain empty pieces", keyPath)
		}
	}

	currDict := dict
	for _, keyPiece := range keyPieces[:len(keyPieces)-1] {
		subVal, found := currDict[keyPiece]
		if !found {
			newDict := template.Dictionary{}
			currDict[keyPiece] = newDict
			currDict = newDict
			continue
		}
		typedSubDict, ok := subVal.(template.Dictionary)
		if !ok {
			return fmt.Errorf("Expected key '%s' to not conflict with other data values at piece '%s'", keyPath, keyPiece)
		}
		currDict = typedSubDict
	}

	currDict[keyPieces[len(keyPieces)-1]] = val
	return nil
}
