package models

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Confidence is an extraction confidence in [0,1], either a plain scalar or
// a structured breakdown with an overall value.
//
// In JSON a scalar is written as a number and a breakdown as an object:
//
//	0.92
//	{"overall": 0.9, "headers": 0.95, "cells": 0.85}
type Confidence struct {
	// Overall is the scalar confidence.
	Overall float64
	// Breakdown holds per-aspect scores (nil for a scalar confidence).
	Breakdown map[string]float64
}

// Scalar returns a Confidence without a breakdown.
func Scalar(v float64) Confidence {
	return Confidence{Overall: v}
}

// Value returns the scalar confidence.
func (c Confidence) Value() float64 {
	return c.Overall
}

// MarshalJSON implements json.Marshaler.
func (c Confidence) MarshalJSON() ([]byte, error) {
	if len(c.Breakdown) == 0 {
		return json.Marshal(c.Overall)
	}
	obj := make(map[string]float64, len(c.Breakdown)+1)
	for k, v := range c.Breakdown {
		obj[k] = v
	}
	obj["overall"] = c.Overall
	return json.Marshal(obj)
}

// UnmarshalJSON implements json.Unmarshaler.
// An object without "overall" gets the mean of its breakdown values.
func (c *Confidence) UnmarshalJSON(data []byte) error {
	var scalar *float64
	if err := json.Unmarshal(data, &scalar); err == nil {
		*c = Confidence{}
		if scalar != nil {
			c.Overall = *scalar
		}
		return nil
	}

	var obj map[string]float64
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("confidence must be a number or an object of numbers: %w", err)
	}

	*c = Confidence{Breakdown: make(map[string]float64, len(obj))}
	overall, hasOverall := obj["overall"]
	keys := make([]string, 0, len(obj))
	for k := range obj {
		if k != "overall" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	sum := 0.0
	for _, k := range keys {
		c.Breakdown[k] = obj[k]
		sum += obj[k]
	}
	switch {
	case hasOverall:
		c.Overall = overall
	case len(keys) > 0:
		c.Overall = sum / float64(len(keys))
	}
	if len(c.Breakdown) == 0 {
		c.Breakdown = nil
	}
	return nil
}
