package cli

import (
	"encoding/base64"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sohamshetty07/oraculum-core/internal/model"
)

// LoadJobConfig reads and validates a job configuration YAML file.
func LoadJobConfig(path string) (*model.JobConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read job config: %w", err)
	}

	var cfg model.JobConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse job config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid job config: %w", err)
	}
	return &cfg, nil
}

// BuildSubmitRequest turns a job config into the wire request, reading and
// base64-encoding any configured attachments. Attachment data is payload
// only; the backend needs no MIME metadata.
func BuildSubmitRequest(cfg *model.JobConfig) (model.SubmitRequest, error) {
	req := model.SubmitRequest{
		Scenario:       cfg.Scenario,
		ProductName:    cfg.ProductName,
		TargetAudience: cfg.TargetAudience,
		Context:        cfg.Context,
		AgentCount:     cfg.AgentCount,
	}

	var err error
	if cfg.ImagePath != "" {
		if req.ImageData, err = encodeAttachment(cfg.ImagePath); err != nil {
			return model.SubmitRequest{}, err
		}
	}
	if cfg.PDFPath != "" {
		if req.PDFData, err = encodeAttachment(cfg.PDFPath); err != nil {
			return model.SubmitRequest{}, err
		}
	}
	return req, nil
}

func encodeAttachment(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read attachment %s: %w", path, err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}
