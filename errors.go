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

import "fmt"

// Kind identifies the structural problem that aborted a parse.
type Kind string

const (
	MalformedTag                   Kind = "MalformedTag"
	MalformedSpecialTag            Kind = "MalformedSpecialTag"
	MalformedProcessingInstruction Kind = "MalformedProcessingInstruction"
	UnclosedComment                Kind = "UnclosedComment"
	UnclosedDTD                    Kind = "UnclosedDTD"
	UnclosedCDATA                  Kind = "UnclosedCDATA"
	MalformedDTD                   Kind = "MalformedDTD"
	MalformedCDATA                 Kind = "MalformedCDATA"
	MismatchedClosingTag           Kind = "MismatchedClosingTag"
	MissingClosingTag              Kind = "MissingClosingTag"
	TooManyTopLevelNodes           Kind = "TooManyTopLevelNodes"
)

var kindMessages = map[Kind]string{
	MalformedTag:                   "tag name does not match the identifier grammar",
	MalformedSpecialTag:            "unrecognized special tag",
	MalformedProcessingInstruction: "processing instruction does not match the expected shape",
	UnclosedComment:                "comment never terminated with '--'",
	UnclosedDTD:                    "DTD internal subset never balanced its ']'",
	UnclosedCDATA:                  "CDATA section never terminated with ']]'",
	MalformedDTD:                   "DTD is neither an external nor an inline declaration",
	MalformedCDATA:                 "CDATA section does not start with '[CDATA['",
	MismatchedClosingTag:           "closing tag does not match the open element",
	MissingClosingTag:              "reached end of input with an element still open",
	TooManyTopLevelNodes:           "a document holds exactly one top-level element",
}

// ParseError is the structured record of the first structural problem found.
// Parsing is strictly fail-fast: no partial tree is returned alongside it.
type ParseError struct {
	// Kind classifies the failure.
	Kind Kind

	// Tag is the raw bracket interior of the offending tag.
	Tag string

	// Line is the 1-based line the offending tag starts on.
	Line int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s Error: %s on line %d: <%s>", e.Kind, kindMessages[e.Kind], e.Line, e.Tag)
}
