package utils

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

// SaveJSON writes v as indented JSON, creating parent directories as needed.
func SaveJSON(filePath string, v any) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %v", filepath.Dir(filePath), err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal json: %v", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %v", filePath, err)
	}
	log.Printf("written to: %s", filePath)
	return nil
}

// LoadJSON reads a JSON file into v.
func LoadJSON(filePath string, v any) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %v", filePath, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %v", filePath, err)
	}
	return nil
}

func WriteMarkdown(filePath, fileName, content string) error {
	if err := os.MkdirAll(filePath, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %v", filePath, err)
	}

	filePath = filepath.Join(filePath, fileName)
	if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %v", filePath, err)
	}
	log.Printf("written to: %s", filePath)
	return nil
}

// ReportPath builds the per-ticker output path for a platform run:
// {dataDir}/stocks/{TICKER}/{platform}_{timestamp}.json
func ReportPath(dataDir, ticker, platform string, at time.Time) string {
	timestamp := at.Format("2006-01-02_15-04-05")
	return filepath.Join(dataDir, "stocks", ticker, fmt.Sprintf("%s_%s.json", platform, timestamp))
}
