package main

import (
	"github.com/spf13/pflag"

	globalstyles "github.com/goliatone/go-global-styles"
)

// sourceValue parses --source while flags are read, so an unknown tier
// fails before any file is opened.
type sourceValue globalstyles.Source

var _ pflag.Value = (*sourceValue)(nil)

func (v *sourceValue) String() string {
	return globalstyles.Source(*v).String()
}

func (v *sourceValue) Set(raw string) error {
	source, err := globalstyles.ParseSource(raw)
	if err != nil {
		return err
	}
	*v = sourceValue(source)
	return nil
}

func (v *sourceValue) Type() string {
	return "source"
}

func (v *sourceValue) Source() globalstyles.Source {
	return globalstyles.Source(*v)
}
