// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package limitedset_test

import (
	"testing"

	"github.com/agrocoin/agrocoind/limitedset"
)

func TestAddition(t *testing.T) {

	items := []string{
		"0123456789",
		"abcdefghijklmnopqrstuvwxyz",
		"abcdefg",
		"abcdefg",
		"abcdefg",
		"abcdefg",
		"abcdefg",
		"abcdefg",
		"abcdefg",
		"hijklmn",
		"opqrstu",
		"vwxyzab",
		"cdefghi",
		"jklmnop",
		"qrstuvw",
	}

	expected := []string{
		"opqrstu",
		"vwxyzab",
		"cdefghi",
		"jklmnop",
		"qrstuvw",
	}

	check(t, items, expected)

}

// add a list of items and check that all the expected ones are present
// compute the ones that should not pe present and check that they are not
func check(t *testing.T, items []string, expected []string) {

	setSize := len(expected)

	s1 := limitedset.New(setSize)
	if nil == s1 {
		t.Fatalf("failed to create a limitedset of size: %d", setSize)
	}

	for _, d := range items {
		s1.Add(d)
	}

	hash := make(map[string]struct{}) // record all the expected

	// all expected must be present
	for i, d := range expected {
		hash[d] = struct{}{}
		if !s1.Exists(d) {
			t.Errorf("item[%d] missing: %q", i, d)
		}
	}

	// check the inputs (exclude the expected)
	for i, d := range items {
		if _, ok := hash[d]; ok {
			continue
		}
		if s1.Exists(d) {
			t.Errorf("item[%d] present: %q", i, d)
		}
	}
}

func TestPullToFront(t *testing.T) {

	items := []string{
		"0123456789",
		"abcdefghijklmnopqrstuvwxyz",
		"abcdefg",
		"abcdefg",
		"abcdefg",
		"abcdefg",
		"abcdefg",
		"abcdefg",
		"abcdefg",
		"hijklmn",
		"abcdefg",
		"opqrstu",
		"abcdefg",
		"vwxyzab",
		"abcdefg",
		"cdefghi",
		"abcdefg",
		"jklmnop",
		"abcdefg",
		"abcdefg",
		"qrstuvw",
		"abcdefg",
		"xyzabcd",
	}

	expected := []string{
		"cdefghi",
		"jklmnop",
		"qrstuvw",
		"abcdefg",
		"xyzabcd",
	}

	check(t, items, expected)
}

// inventory keys are arrays rather than strings
type key [4]byte

func TestArrayKeys(t *testing.T) {
	s := limitedset.New(3)

	for i := byte(0); i < 5; i += 1 {
		if !s.Add(key{i}) {
			t.Errorf("key: %d reported as already present", i)
		}
	}
	if s.Add(key{4}) {
		t.Errorf("key: 4 reported as new")
	}

	if 3 != s.Count() {
		t.Errorf("count: %d  expected: 3", s.Count())
	}
	for i := byte(0); i < 2; i += 1 {
		if s.Exists(key{i}) {
			t.Errorf("evicted key: %d still present", i)
		}
	}
	for i := byte(2); i < 5; i += 1 {
		if !s.Exists(key{i}) {
			t.Errorf("key: %d missing", i)
		}
	}
}

// re-adding the oldest item must keep it and evict the next oldest
func TestReAddOldest(t *testing.T) {
	s := limitedset.New(3)
	s.Add("a")
	s.Add("b")
	s.Add("c")
	s.Add("a")
	s.Add("d")

	expected := map[string]bool{"a": true, "b": false, "c": true, "d": true}
	for k, present := range expected {
		if present != s.Exists(k) {
			t.Errorf("item: %q  present: %v  expected: %v", k, s.Exists(k), present)
		}
	}
}
