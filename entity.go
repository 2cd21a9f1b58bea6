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

import "strings"

// The five predefined entities are the whole table. No numeric character
// references, no custom entity expansion.
//
// Decoding replaces &amp; last so that literal ampersands introduced by the
// other replacements are not re-interpreted.
var decodeTable = [...][2]string{
	{"&lt;", "<"},
	{"&gt;", ">"},
	{"&quot;", `"`},
	{"&apos;", "'"},
	{"&amp;", "&"},
}

// DecodeEntities replaces the five predefined XML character references with
// their literal characters.
func DecodeEntities(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	for _, p := range decodeTable {
		s = strings.ReplaceAll(s, p[0], p[1])
	}
	return s
}

// EncodeEntities escapes text content. The ampersand goes first so the other
// replacements are not double-escaped.
func EncodeEntities(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

// EncodeAttrEntities escapes an attribute value: text content escapes plus
// both quote characters.
func EncodeAttrEntities(s string) string {
	s = EncodeEntities(s)
	s = strings.ReplaceAll(s, `"`, "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
