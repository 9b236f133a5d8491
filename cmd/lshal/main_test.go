package main

import (
	"bytes"
	"os"
	"testing"
	"time"

	"helloworld/domain"
	"helloworld/servicemanager"

	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	req := require.New(t)
	infos := []servicemanager.ServiceInfo{{
		Registration: domain.Registration{
			Name:         domain.ServiceName,
			Address:      "unix:/run/hw.sock",
			PID:          42,
			RegisteredAt: time.Now(),
		},
		Declared: true,
	}}
	var out bytes.Buffer

	render(&out, infos, func(pid int32) string { return "RUNNING" })

	req.Contains(out.String(), domain.ServiceName)
	req.Contains(out.String(), "unix:/run/hw.sock")
	req.Contains(out.String(), "RUNNING")
}

func TestProcessStatus(t *testing.T) {
	req := require.New(t)

	req.Equal(unknownStatus, processStatus(0))
	req.NotEqual("DEAD", processStatus(int32(os.Getpid())))
}
