package reflow

import (
	"github.com/tsawler/reflow/model"
	"github.com/tsawler/reflow/pdfwrite"
	"github.com/tsawler/reflow/pipeline"
)

// ConvertOptions holds the configuration of a conversion.
type ConvertOptions struct {
	// Page selection, 1-indexed. nil means all pages.
	pages []int

	// Stage settings handed to the pipeline.
	config pipeline.Config

	// Output encoding.
	page pdfwrite.PageOptions

	// Overrides for the source document metadata.
	meta model.Metadata
}

// defaultOptions returns the default conversion options.
func defaultOptions() ConvertOptions {
	return ConvertOptions{
		pages:  nil,
		config: pipeline.DefaultConfig(),
		page:   pdfwrite.DefaultPageOptions(),
	}
}

// clone creates a deep copy of ConvertOptions.
func (o ConvertOptions) clone() ConvertOptions {
	newOpts := o

	if o.pages != nil {
		newOpts.pages = make([]int, len(o.pages))
		copy(newOpts.pages, o.pages)
	}
	if o.meta.Keywords != nil {
		newOpts.meta.Keywords = append([]string(nil), o.meta.Keywords...)
	}

	return newOpts
}

// metadata merges the overrides into the metadata the source carries.
func (o ConvertOptions) metadata(src model.Metadata) model.Metadata {
	m := src
	if o.meta.Title != "" {
		m.Title = o.meta.Title
	}
	if o.meta.Author != "" {
		m.Author = o.meta.Author
	}
	if o.meta.Subject != "" {
		m.Subject = o.meta.Subject
	}
	if len(o.meta.Keywords) > 0 {
		m.Keywords = o.meta.Keywords
	}
	if o.meta.Creator != "" {
		m.Creator = o.meta.Creator
	}
	if o.meta.Producer != "" {
		m.Producer = o.meta.Producer
	}
	if !o.meta.CreationDate.IsZero() {
		m.CreationDate = o.meta.CreationDate
	}
	// The output is a new file; the source modification date does not
	// describe it.
	m.ModDate = o.meta.ModDate
	return m
}
