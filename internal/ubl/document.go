// Package ubl assembles CIUS-RO UBL 2.1 invoice documents and reads them
// back.
package ubl

import (
	"io"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	money "github.com/rezonia/efactura/internal/decimal"
	"github.com/rezonia/efactura/internal/tax"
)

const indent = 2

// Document is an assembled invoice
type Document struct {
	doc *etree.Document

	// Tax is the aggregation the document totals were written from
	Tax *tax.Summary

	// Warnings lists data that was passed through unresolved
	Warnings []string
}

// String serializes the document with its XML declaration. It returns ""
// if serialization fails; use Bytes or WriteTo to see the error.
func (d *Document) String() string {
	s, err := d.doc.WriteToString()
	if err != nil {
		return ""
	}
	return s
}

// Bytes serializes the document
func (d *Document) Bytes() ([]byte, error) {
	return d.doc.WriteToBytes()
}

// WriteTo writes the serialized document to w
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	return d.doc.WriteTo(w)
}

func newTree(root string) (*etree.Document, *etree.Element) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	return doc, doc.CreateElement(root)
}

func addText(parent *etree.Element, tag, value string) *etree.Element {
	el := parent.CreateElement(tag)
	el.SetText(value)
	return el
}

func addOptional(parent *etree.Element, tag, value string) {
	if value != "" {
		addText(parent, tag, value)
	}
}

func addAmount(parent *etree.Element, tag string, value decimal.Decimal, currency string) {
	el := addText(parent, tag, money.FormatAmount(value))
	el.CreateAttr("currencyID", currency)
}

func addTaxScheme(parent *etree.Element) {
	addText(parent.CreateElement("cac:TaxScheme"), "cbc:ID", taxSchemeID)
}
