package svgdoc

import (
	"bytes"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"

	errs "github.com/matzehuels/svgring/pkg/errors"
)

// XML namespaces an SVG document is expected to use.
const (
	NamespaceSVG   = "http://www.w3.org/2000/svg"
	NamespaceXLink = "http://www.w3.org/1999/xlink"
)

// declaration is written at the top of every saved document.
const declaration = `version="1.0" encoding="UTF-8"`

// Document is an in-memory SVG document.
// It is loaded once, mutated in place, and written once.
type Document struct {
	doc *etree.Document
}

// Load reads and parses the document at path.
// The file handle is released before Load returns.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "input %s", path)
		}
		return nil, errs.Wrap(errs.ErrCodeIO, err, "open %s", path)
	}
	defer f.Close()

	d, err := Read(f)
	if err != nil {
		return nil, errs.Wrap(errs.GetCode(err), err, "read %s", path)
	}
	return d, nil
}

// Read parses a document from r.
func Read(r io.Reader) (*Document, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidDocument, err, "malformed XML")
	}
	if doc.Root() == nil {
		return nil, errs.New(errs.ErrCodeInvalidDocument, "document has no root element")
	}
	return &Document{doc: doc}, nil
}

// ReadString parses a document held in a string.
func ReadString(s string) (*Document, error) {
	return Read(strings.NewReader(s))
}

// Root returns the document element.
func (d *Document) Root() *etree.Element {
	return d.doc.Root()
}

// WriteTo serializes the document with an XML declaration naming its encoding.
// Namespace declarations and prefixes are written exactly as they were read.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	d.ensureDeclaration()
	return d.doc.WriteTo(w)
}

// Bytes returns the serialized document.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := d.WriteTo(&buf); err != nil {
		return nil, errs.Wrap(errs.ErrCodeIO, err, "serialize document")
	}
	return buf.Bytes(), nil
}

// Save writes the document to path. The content is written to a temporary
// file in the same directory and renamed into place, so a failure never
// leaves a partial file at path.
func (d *Document) Save(path string) (err error) {
	data, err := d.Bytes()
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".svgring-*.svg")
	if err != nil {
		return errs.Wrap(errs.ErrCodeIO, err, "create output in %s", filepath.Dir(path))
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return errs.Wrap(errs.ErrCodeIO, err, "write %s", path)
	}
	if err = tmp.Chmod(fs.FileMode(0o644)); err != nil {
		return errs.Wrap(errs.ErrCodeIO, err, "chmod %s", path)
	}
	if err = tmp.Close(); err != nil {
		return errs.Wrap(errs.ErrCodeIO, err, "close %s", path)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return errs.Wrap(errs.ErrCodeIO, err, "rename into %s", path)
	}
	return nil
}

// ensureDeclaration makes the first token an <?xml ...?> declaration with UTF-8 encoding.
func (d *Document) ensureDeclaration() {
	for _, tok := range d.doc.Child {
		if pi, ok := tok.(*etree.ProcInst); ok && pi.Target == "xml" {
			pi.Inst = declaration
			return
		}
	}
	d.doc.InsertChildAt(0, etree.NewText("\n"))
	d.doc.InsertChildAt(0, &etree.ProcInst{Target: "xml", Inst: declaration})
}
