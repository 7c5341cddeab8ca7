// Package vcard provides the contact candidate provider backed by .vcf files.
package vcard
