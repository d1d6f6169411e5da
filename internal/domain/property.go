package domain

import (
	"encoding/json"
	"time"
)

// PropertyStatus represents the lifecycle of a listing.
type PropertyStatus string

const (
	PropertyStatusActive   PropertyStatus = "ACTIVE"
	PropertyStatusSold     PropertyStatus = "SOLD"
	PropertyStatusArchived PropertyStatus = "ARCHIVED"
)

// Location is the structured form of the serialized location payload.
type Location struct {
	Address   string  `json:"address"`
	City      string  `json:"city"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// Property is a listing owned by an agent. Location, Images and Features are
// stored as JSON text columns and parsed at the repository boundary.
type Property struct {
	ID          string
	AgentID     string
	Title       string
	Description string
	Price       int64
	Status      PropertyStatus
	Location    Location
	Images      []string
	Features    []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EncodeLocation serializes the structured location for storage.
func (p *Property) EncodeLocation() (string, error) {
	raw, err := json.Marshal(p.Location)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// EncodeImages serializes the image URL list for storage.
func (p *Property) EncodeImages() (string, error) {
	return encodeStringList(p.Images)
}

// EncodeFeatures serializes the feature tag list for storage.
func (p *Property) EncodeFeatures() (string, error) {
	return encodeStringList(p.Features)
}

// DecodePayloads parses the serialized columns back into structured fields.
// Empty columns decode to zero values rather than errors.
func (p *Property) DecodePayloads(location, images, features string) error {
	if location != "" {
		if err := json.Unmarshal([]byte(location), &p.Location); err != nil {
			return err
		}
	}
	var err error
	if p.Images, err = decodeStringList(images); err != nil {
		return err
	}
	if p.Features, err = decodeStringList(features); err != nil {
		return err
	}
	return nil
}

func encodeStringList(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func decodeStringList(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, err
	}
	return values, nil
}
