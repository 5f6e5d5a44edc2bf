package util

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func restoreLogger(t *testing.T) {
	t.Helper()
	out := Logger.Out
	level := Logger.GetLevel()
	formatter := Logger.Formatter
	t.Cleanup(func() {
		Logger.SetOutput(out)
		Logger.SetLevel(level)
		Logger.SetFormatter(formatter)
	})
}

func TestSetLogLevel(t *testing.T) {
	restoreLogger(t)

	if err := SetLogLevel("debug"); err != nil {
		t.Fatalf("SetLogLevel(debug): %v", err)
	}
	if Logger.GetLevel() != logrus.DebugLevel {
		t.Errorf("level = %v, want debug", Logger.GetLevel())
	}

	if err := SetLogLevel("nonsense"); err == nil {
		t.Error("SetLogLevel(nonsense) should fail")
	}
}

func TestSetJSONFormat(t *testing.T) {
	restoreLogger(t)

	var buf bytes.Buffer
	SetLogOutput(&buf)
	SetJSONFormat()

	WithValidator("ospf").Info("starting")

	var line map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if line["validator"] != "ospf" {
		t.Errorf("validator field = %v, want ospf", line["validator"])
	}
	if line["msg"] != "starting" {
		t.Errorf("msg field = %v, want starting", line["msg"])
	}
}

func TestScopedEntries(t *testing.T) {
	restoreLogger(t)

	var buf bytes.Buffer
	SetLogOutput(&buf)

	WithDevice("core1").Info("connected")
	WithFields(map[string]interface{}{"device": "core1", "validator": "bgp"}).Info("done")

	out := buf.String()
	for _, want := range []string{"device=core1", "validator=bgp"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
