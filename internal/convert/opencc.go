// Package convert maps Chinese text between script variants with OpenCC.
package convert

import (
	"fmt"

	"github.com/longbridgeapp/opencc"
)

// DefaultConversion converts Simplified Chinese to Traditional Chinese as
// written in Taiwan, including common Taiwanese phrasing.
const DefaultConversion = "s2twp"

// OpenCC converts text with one OpenCC conversion profile.
type OpenCC struct {
	name string
	cc   *opencc.OpenCC
}

// NewOpenCC loads a conversion profile such as "s2t", "s2tw" or "s2twp".
// Loading reads the dictionaries, so construct one converter and reuse it.
func NewOpenCC(conversion string) (*OpenCC, error) {
	if conversion == "" {
		conversion = DefaultConversion
	}
	cc, err := opencc.New(conversion)
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenCC conversion %q: %w", conversion, err)
	}
	return &OpenCC{name: conversion, cc: cc}, nil
}

// Convert returns text in the target script.
func (o *OpenCC) Convert(text string) (string, error) {
	out, err := o.cc.Convert(text)
	if err != nil {
		return "", fmt.Errorf("opencc %s: %w", o.name, err)
	}
	return out, nil
}

// Name returns the conversion profile name.
func (o *OpenCC) Name() string {
	return o.name
}
