// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package io reads LC-3 program images.
//
// An image file holds big-endian 16-bit words. The first word is the origin
// address; the remaining words are loaded sequentially from the origin.
package io

import (
	"encoding/binary"
	"io"
	"strconv"
	"strings"
)

// Image is a program and the address it loads at.
type Image struct {
	Origin uint16   // Load address of the first word.
	Words  []uint16 // Program words.
}

// ReadImage reads an object image.
func ReadImage(r io.Reader) (img *Image, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return
	}

	if len(data) < 2 {
		err = ErrImageShort
		return
	}

	if len(data)%2 != 0 {
		err = ErrImageOdd
		return
	}

	img = &Image{
		Origin: binary.BigEndian.Uint16(data),
		Words:  make([]uint16, 0, len(data)/2-1),
	}

	for n := 2; n < len(data); n += 2 {
		img.Words = append(img.Words, binary.BigEndian.Uint16(data[n:]))
	}

	return
}

// ParseWord parses one program word, in any Go integer syntax.
// A leading 'x' is also accepted as hexadecimal.
func ParseWord(text string) (word uint16, err error) {
	str := text
	if strings.HasPrefix(str, "x") || strings.HasPrefix(str, "X") {
		str = "0" + str
	}

	v64, err := strconv.ParseUint(str, 0, 16)
	if err != nil {
		err = ErrParseWord(text)
		return
	}

	word = uint16(v64)
	return
}

// ParseWords parses a list of program words.
func ParseWords(texts ...string) (words []uint16, err error) {
	for _, text := range texts {
		var word uint16
		word, err = ParseWord(text)
		if err != nil {
			return
		}
		words = append(words, word)
	}

	return
}
