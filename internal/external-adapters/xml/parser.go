// Package xml parses the XML registry artifacts: BPMN process definitions
// and database changelogs.
package xml

import (
	"encoding/xml"
	"fmt"
	"os"

	"github.com/ochairo/regguard/internal/domain/entities"
)

type xmlDefinitions struct {
	XMLName   xml.Name     `xml:"definitions"`
	Processes []xmlProcess `xml:"process"`
}

type xmlProcess struct {
	ID           string `xml:"id,attr"`
	Name         string `xml:"name,attr"`
	IsExecutable bool   `xml:"isExecutable,attr"`
}

type xmlChangelog struct {
	XMLName    xml.Name       `xml:"databaseChangeLog"`
	ChangeSets []xmlChangeSet `xml:"changeSet"`
}

type xmlChangeSet struct {
	ID     string `xml:"id,attr"`
	Author string `xml:"author,attr"`
}

// Parser reads XML registry artifacts
type Parser struct{}

// NewParser creates a new XML parser
func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) decodeFile(filePath string, out interface{}) error {
	//nolint:gosec // G304: filePath is a registry artifact selected by the user
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filePath, err)
	}
	if err := xml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse XML: %w", err)
	}
	return nil
}

// ParseProcessDefinition parses a BPMN file
func (p *Parser) ParseProcessDefinition(filePath string) (*entities.ProcessDefinitionFile, error) {
	var raw xmlDefinitions
	if err := p.decodeFile(filePath, &raw); err != nil {
		return nil, err
	}

	def := &entities.ProcessDefinitionFile{Source: filePath}
	for _, proc := range raw.Processes {
		def.Processes = append(def.Processes, entities.Process{
			ID:         proc.ID,
			Name:       proc.Name,
			Executable: proc.IsExecutable,
		})
	}
	return def, nil
}

// ParseChangelog parses a database changelog
func (p *Parser) ParseChangelog(filePath string) (*entities.Changelog, error) {
	var raw xmlChangelog
	if err := p.decodeFile(filePath, &raw); err != nil {
		return nil, err
	}

	changelog := &entities.Changelog{Source: filePath}
	for _, cs := range raw.ChangeSets {
		changelog.ChangeSets = append(changelog.ChangeSets, entities.ChangeSet{ID: cs.ID, Author: cs.Author})
	}
	return changelog, nil
}
