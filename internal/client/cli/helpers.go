package cli

import (
	"encoding/json"
	"fmt"

	"github.com/iudanet/gophsync/internal/client/iocli"
	"github.com/iudanet/gophsync/internal/models"
)

// parseDocument decodes a JSON object given on the command line
func parseDocument(raw string) (models.Document, error) {
	var doc models.Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON document: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("invalid JSON document: expected an object")
	}
	return doc, nil
}

// printDocument writes doc as indented JSON
func printDocument(out iocli.IO, doc models.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	out.Println(string(data))
	return nil
}
