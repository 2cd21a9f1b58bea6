// Copyright 2020 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package xmlsorter

import "testing"

func TestDecodeEntities(t *testing.T) {
	testCases := []struct {
		desc  string
		input string
		want  string
	}{
		{"angle brackets", "&lt;a&gt;", "<a>"},
		{"quotes", "&quot;a&apos;", `"a'`},
		{"ampersand last prevents re-interpretation", "&amp;lt;", "&lt;"},
		{"double escaped stays single decoded", "&amp;amp;", "&amp;"},
		{"no ampersand fast path", "plain text", "plain text"},
		{"unknown entity untouched", "&unknown;", "&unknown;"},
		{"empty", "", ""},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			if got := DecodeEntities(tc.input); got != tc.want {
				t.Errorf("DecodeEntities(%q): %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestEncodeEntities(t *testing.T) {
	if got, want := EncodeEntities(`a&b<c>d"e'f`), `a&amp;b&lt;c&gt;d"e'f`; got != want {
		t.Errorf("EncodeEntities: %q, want %q", got, want)
	}
	if got, want := EncodeAttrEntities(`a&b<c>d"e'f`), `a&amp;b&lt;c&gt;d&quot;e&apos;f`; got != want {
		t.Errorf("EncodeAttrEntities: %q, want %q", got, want)
	}
}

func TestEncodeDecodeInverse(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		`a&b<c>d"e'f`,
		"&&&",
		"<<>>",
		`"''"`,
		"mixed & <tags> with \"quotes\" and 'apostrophes'",
	}
	for _, s := range inputs {
		if got := DecodeEntities(EncodeEntities(s)); got != s {
			t.Errorf("decode(encode(%q)): %q", s, got)
		}
		if got := DecodeEntities(EncodeAttrEntities(s)); got != s {
			t.Errorf("decode(encodeAttr(%q)): %q", s, got)
		}
	}
}
