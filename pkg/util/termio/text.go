// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package termio

// FormattedText represents a chunk of text along with an optional ANSI
// formatting escape to apply when printed to a colour-capable terminal.
type FormattedText struct {
	// Format to apply to this text (optional).
	format *AnsiEscape
	// Text holds the contents.
	text []rune
}

// NewText constructs a new (unformatted) chunk of text.
func NewText(text string) FormattedText {
	return FormattedText{nil, []rune(text)}
}

// NewFormattedText constructs a new chunk of text with a given format.
func NewFormattedText(text string, format AnsiEscape) FormattedText {
	return FormattedText{&format, []rune(text)}
}

// NewColouredText constructs a new (coloured) chunk of text.
func NewColouredText(text string, colour uint) FormattedText {
	escape := NewAnsiEscape().FgColour(colour)
	return FormattedText{&escape, []rune(text)}
}

// Len returns the number of characters (runes) in this chunk, excluding any
// formatting escapes.
func (p FormattedText) Len() uint {
	return uint(len(p.text))
}

// Format returns a copy of this text with the given format applied.
func (p FormattedText) Format(format AnsiEscape) FormattedText {
	return FormattedText{&format, p.text}
}

// Clip returns the substring of this text between start and end, clamping to
// the available length.
func (p FormattedText) Clip(start uint, end uint) FormattedText {
	n := p.Len()
	//
	switch {
	case start >= n:
		return FormattedText{p.format, []rune{}}
	case end >= n:
		return FormattedText{p.format, p.text[start:]}
	default:
		return FormattedText{p.format, p.text[start:end]}
	}
}

// Pad right-pads this text with spaces until it reaches the given width.
// Text already at or beyond the given width is returned unchanged.
func (p FormattedText) Pad(width uint) FormattedText {
	n := p.Len()
	if n >= width {
		return p
	}
	//
	padded := make([]rune, width)
	copy(padded, p.text)
	//
	for i := n; i < width; i++ {
		padded[i] = ' '
	}
	//
	return FormattedText{p.format, padded}
}

// Bytes returns an ANSI-formatted byte representation of this chunk, applying
// and then resetting the format (if any).
func (p FormattedText) Bytes() []byte {
	if p.format != nil {
		bytes := []byte(p.format.Build())
		bytes = append(bytes, []byte(string(p.text))...)
		//
		return append(bytes, []byte(ResetAnsiEscape().Build())...)
	}
	//
	return []byte(string(p.text))
}

// String returns the unformatted text.
func (p FormattedText) String() string {
	return string(p.text)
}
