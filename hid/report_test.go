package hid_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phantomkb/phantom/hid"
	"github.com/phantomkb/phantom/internal/log"
	"github.com/phantomkb/phantom/keycode"
	"github.com/phantomkb/phantom/report"
)

func TestEncode(t *testing.T) {
	b := hid.Encode(report.Report{
		Keys:      [6]uint8{keycode.KeyA, keycode.KeyB, 0, 0, 0, 0},
		Modifiers: keycode.ModLeftShift,
	})

	require.Len(t, b, hid.ReportSize)
	assert.Equal(t, []byte{keycode.ModLeftShift, 0x00, keycode.KeyA, keycode.KeyB, 0, 0, 0, 0}, b)
}

func TestEncodeEmpty(t *testing.T) {
	assert.Equal(t, make([]byte, hid.ReportSize), hid.Encode(report.Report{}))
}

func TestTapLogsAndForwards(t *testing.T) {
	var buf bytes.Buffer
	var got []report.Report
	next := report.TransmitterFunc(func(r report.Report) error {
		got = append(got, r)
		return nil
	})

	tap := hid.NewTap(next, log.NewReportLogger(&buf))
	r := report.Report{Keys: [6]uint8{keycode.KeyZ}}
	require.NoError(t, tap.Send(r))

	require.Len(t, got, 1)
	assert.Equal(t, r, got[0])
	assert.Contains(t, buf.String(), "D->H")
	assert.Contains(t, buf.String(), "1d") // KeyZ usage in hex
}

func TestTapPropagatesSendError(t *testing.T) {
	sendErr := errors.New("busy")
	tap := hid.NewTap(report.TransmitterFunc(func(report.Report) error { return sendErr }),
		log.NewReportLogger(nil))

	assert.ErrorIs(t, tap.Send(report.Report{Keys: [6]uint8{keycode.KeyA}}), sendErr)
}
