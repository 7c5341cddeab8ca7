// Package catalog provides the settings candidate provider: a fixed
// catalogue of OS settings pages, each with synonyms matched as keywords.
package catalog
