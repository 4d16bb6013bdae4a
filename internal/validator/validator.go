package validator

import (
	"encoding/json"
	"errors"
	"fmt"

	"unifi/catalog/internal/domain"

	log "github.com/sirupsen/logrus"
)

// Result is the outcome of validating a raw feed body. It is always
// usable: Devices may be empty but is never nil, and validation
// problems are collected rather than raised.
type Result struct {
	Devices   []domain.DeviceRecord
	Version   string
	Errors    []string
	HadErrors bool
}

type rawEnvelope struct {
	Devices []json.RawMessage `json:"devices"`
	Version string            `json:"version"`
}

type rawProduct struct {
	Name   string `json:"name"`
	Abbrev string `json:"abbrev"`
}

type rawLine struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type rawIcon struct {
	ID          string   `json:"id"`
	Resolutions [][2]int `json:"resolutions"`
}

type rawDevice struct {
	ID           string         `json:"id"`
	SysID        string         `json:"sysid"`
	SKU          string         `json:"sku"`
	Product      rawProduct     `json:"product"`
	Line         rawLine        `json:"line"`
	ShortNames   []string       `json:"shortnames"`
	Icon         rawIcon        `json:"icon"`
	Network      map[string]any `json:"network"`
	Compliance   map[string]any `json:"compliance"`
	Connectivity map[string]any `json:"connectivity"`
}

// Validate turns a raw feed body into validated device records. It
// first decodes the {devices, version} envelope strictly; when the
// document structure itself is broken it falls back to defensive
// extraction over an untyped tree. Records that fail individually are
// replaced with safely-defaulted placeholders and reported in Errors.
// Validate never returns an error and never panics.
func Validate(body []byte) *Result {
	result := &Result{Devices: []domain.DeviceRecord{}}

	var envelope rawEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		log.Warnf("Catalog envelope failed validation, extracting records defensively: %v", err)
		validateLoose(body, result)
		result.HadErrors = len(result.Errors) > 0
		return result
	}

	result.Version = envelope.Version
	for i, raw := range envelope.Devices {
		rec, err := validateRecord(raw)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("record %d: %v", i, err))
			rec = fallbackRecord(decodeTree(raw), i)
		}
		result.Devices = append(result.Devices, rec)
	}

	result.HadErrors = len(result.Errors) > 0
	return result
}

func validateRecord(raw json.RawMessage) (domain.DeviceRecord, error) {
	var rec rawDevice
	if err := json.Unmarshal(raw, &rec); err != nil {
		return domain.DeviceRecord{}, err
	}
	if rec.ID == "" {
		return domain.DeviceRecord{}, errors.New("missing or empty id")
	}

	return domain.DeviceRecord{
		ID:           rec.ID,
		SysID:        rec.SysID,
		Name:         rec.Product.Name,
		Abbrev:       rec.Product.Abbrev,
		LineID:       rec.Line.ID,
		LineName:     rec.Line.Name,
		SKU:          rec.SKU,
		ShortNames:   rec.ShortNames,
		Icon:         domain.Icon{ID: rec.Icon.ID, Resolutions: rec.Icon.Resolutions},
		Network:      rec.Network,
		Compliance:   rec.Compliance,
		Connectivity: rec.Connectivity,
	}, nil
}

// validateLoose handles documents whose envelope does not decode: the
// devices array is dug out of an untyped tree (treated as empty when
// absent) and each entry is validated independently.
func validateLoose(body []byte, result *Result) {
	var tree any
	if err := json.Unmarshal(body, &tree); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("document is not valid JSON: %v", err))
		return
	}

	result.Version = str(tree, "version")

	entries, ok := slice(tree, "devices")
	if !ok {
		result.Errors = append(result.Errors, "devices is missing or not an array")
		return
	}

	for i, entry := range entries {
		raw, err := json.Marshal(entry)
		if err == nil {
			if rec, recErr := validateRecord(raw); recErr == nil {
				result.Devices = append(result.Devices, rec)
				continue
			} else {
				result.Errors = append(result.Errors, fmt.Sprintf("record %d: %v", i, recErr))
			}
		} else {
			result.Errors = append(result.Errors, fmt.Sprintf("record %d: %v", i, err))
		}
		result.Devices = append(result.Devices, fallbackRecord(entry, i))
	}
}

// fallbackRecord builds a safe placeholder via field-by-field defensive
// extraction. The id is synthesized when absent so downstream code can
// always rely on a non-empty identifier.
func fallbackRecord(tree any, index int) domain.DeviceRecord {
	rec := domain.DeviceRecord{
		ID:         str(tree, "id"),
		SysID:      str(tree, "sysid"),
		Name:       str(tree, "product", "name"),
		Abbrev:     str(tree, "product", "abbrev"),
		LineID:     str(tree, "line", "id"),
		LineName:   str(tree, "line", "name"),
		SKU:        str(tree, "sku"),
		ShortNames: strSlice(tree, "shortnames"),
		Icon: domain.Icon{
			ID:          str(tree, "icon", "id"),
			Resolutions: resolutions(tree, "icon", "resolutions"),
		},
		Network:      obj(tree, "network"),
		Compliance:   obj(tree, "compliance"),
		Connectivity: obj(tree, "connectivity"),
	}

	if rec.ID == "" {
		rec.ID = fmt.Sprintf("unknown-device-%d", index)
	}
	return rec
}

func decodeTree(raw json.RawMessage) any {
	var tree any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return nil
	}
	return tree
}
