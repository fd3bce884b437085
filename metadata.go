package main

import (
	"io/ioutil"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// JSONString defines a JSON object as a string
type JSONString string

const thermalBandsProperty = "thermal_bands"

// Loads the scene metadata JSON from the given path and returns it as a
// string for property lookups.
func loadMetadata(path string) (JSONString, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read scene metadata")
	}
	return JSONString(raw), nil
}

// Resolves the two thermal band map names from the scene metadata. The
// bands are listed, i before j, under properties.thermal_bands.
func thermalBands(metadata JSONString) (string, string, error) {
	jsonPath := "properties." + thermalBandsProperty
	result := gjson.Get(string(metadata), jsonPath)
	if !result.IsArray() {
		return "", "", errors.Errorf("failed to find array %s in metadata", thermalBandsProperty)
	}

	bands := result.Array()
	if len(bands) != 2 {
		return "", "", errors.Errorf("expected 2 thermal bands in metadata, found %d", len(bands))
	}
	return bands[0].String(), bands[1].String(), nil
}
