package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/okunev/chatlite/internal/common"
)

const deviceIDBytes = 16

// deviceIDPath is a test seam for the location of the device identity file.
var deviceIDPath = defaultDeviceIDPath

func defaultDeviceIDPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".chatlite", "device"), nil
}

// loadDeviceID returns the stable identifier of this device. On first run a
// random identifier is generated and persisted, so the saved-account registry
// on the server keeps recognizing the device across restarts.
func loadDeviceID() (string, error) {
	path, err := deviceIDPath()
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err == nil {
		if id := strings.TrimSpace(string(data)); id != "" {
			return id, nil
		}
	} else if !os.IsNotExist(err) {
		return "", err
	}

	id, err := common.MakeRandHexString(deviceIDBytes)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(id+"\n"), 0o600); err != nil {
		return "", err
	}
	return id, nil
}
