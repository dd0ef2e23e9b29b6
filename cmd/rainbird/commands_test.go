package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/arloliu/go-rainbird/rainbird"
	"github.com/arloliu/go-rainbird/sip"
	"github.com/stretchr/testify/require"
)

// controller is a minimal controller simulator answering from a table of hex replies keyed by
// opcode, unknown opcodes are acknowledged.
type controller struct {
	mu      sync.Mutex
	replies map[string]string
	sent    []string
}

func (c *controller) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	plaintext, err := sip.Decrypt("secret", body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var frame sip.Frame
	if err := json.Unmarshal(plaintext, &frame); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	data := frame.Params.Data

	c.mu.Lock()
	c.sent = append(c.sent, data)
	reply, ok := c.replies[data[:2]]
	c.mu.Unlock()
	if !ok {
		reply = "01" + data[:2]
	}

	rsp, _ := json.Marshal(map[string]any{"result": map[string]any{"length": len(reply) / 2, "data": reply}})
	msg, _ := sip.Encrypt("secret", rsp)
	_, _ = w.Write(msg)
}

func (c *controller) requests() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]string(nil), c.sent...)
}

func runCLI(t *testing.T, c *controller, args ...string) (string, error) {
	t.Helper()

	server := httptest.NewServer(c)
	t.Cleanup(server.Close)

	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetArgs(append([]string{"--host", server.Listener.Addr().String(), "--password", "secret", "--retries", "1"}, args...))
	err := cmd.Execute()

	return out.String(), err
}

func TestCommand_StartZone(t *testing.T) {
	require := require.New(t)

	c := &controller{}
	out, err := runCLI(t, c, "start-zone", "5", "10")
	require.NoError(err)
	require.Equal([]string{"3900050A"}, c.requests())

	var rsp map[string]any
	require.NoError(json.Unmarshal([]byte(out), &rsp))
	require.Equal(true, rsp["ack"])
	require.Equal("AcknowledgeResponse", rsp["_type"])
}

func TestCommand_RainDelay(t *testing.T) {
	require := require.New(t)

	c := &controller{replies: map[string]string{"36": "B60003"}}
	out, err := runCLI(t, c, "rain-delay")
	require.NoError(err)
	require.Contains(out, `"delaySetting": 3`)

	_, err = runCLI(t, c, "rain-delay", "7")
	require.NoError(err)
	require.Equal([]string{"36", "370007"}, c.requests())

	_, err = runCLI(t, c, "rain-delay", "15")
	require.ErrorContains(err, "out of range [1, 14]")
	require.Len(c.requests(), 2)
}

func TestCommand_Info(t *testing.T) {
	require := require.New(t)

	c := &controller{replies: map[string]string{
		"02": "820005020A",
		"03": "8300FF000000",
		"05": "850000000000012345",
		"10": "900E1E05",
		"12": "920FA7EA",
		"3E": "BE00",
		"30": "B0000064",
	}}
	out, err := runCLI(t, c, "info")
	require.NoError(err)

	var info struct {
		Model struct {
			Code        string `json:"code"`
			MaxPrograms int    `json:"maxPrograms"`
		} `json:"model"`
		Budgets []programBudget `json:"programsWaterBudget"`
	}
	require.NoError(json.Unmarshal([]byte(out), &info))
	require.Equal("ESP_TM2", info.Model.Code)
	require.Len(info.Budgets, 3)
	for i, b := range info.Budgets {
		require.Equal(i, b.Program)
		require.Equal(uint64(100), b.BudgetPercent)
	}
}

func TestCommand_Scan(t *testing.T) {
	require := require.New(t)

	server := httptest.NewServer(&scanController{supported: map[string]bool{"02": true, "3F": true, "C0": true}})
	t.Cleanup(server.Close)

	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--host", server.Listener.Addr().String(), "--password", "secret", "scan"})
	require.NoError(cmd.Execute())

	var result []supportedCommand
	require.NoError(json.Unmarshal(out.Bytes(), &result))
	require.Equal([]supportedCommand{
		{Opcode: "02", Name: sip.ModelAndVersionRequest},
		{Opcode: "3F", Name: sip.CurrentStationsActiveRequest},
		{Opcode: "C0"},
	}, result)
}

func TestCommand_ScanNamesFromClientRegistry(t *testing.T) {
	require := require.New(t)

	reg, err := sip.NewRegistry(
		[]sip.CommandSpec{
			{Name: sip.CommandSupportRequest, Opcode: 0x04, Params: []int{2}, Response: 0x84, Length: 2},
			{Name: "FlowSensorRequest", Opcode: 0x60, Response: 0xE0, Length: 1},
		},
		[]sip.ResponseSpec{
			{Opcode: 0x00, Type: sip.NotAcknowledgeResponse, Length: 3, Fields: []sip.Field{
				{Name: "commandEcho", Offset: 2, Width: 2},
				{Name: "NAKCode", Offset: 4, Width: 2},
			}},
			{Opcode: 0x84, Type: sip.CommandSupportResponse, Length: 3, Fields: []sip.Field{
				{Name: "commandEcho", Offset: 2, Width: 2},
				{Name: "support", Offset: 4, Width: 2},
			}},
			{Opcode: 0xE0, Type: "FlowSensorResponse", Variable: true},
		},
	)
	require.NoError(err)

	server := httptest.NewServer(&scanController{supported: map[string]bool{"02": true, "60": true}})
	t.Cleanup(server.Close)

	cfg, err := rainbird.NewClientConfig(server.Listener.Addr().String(), "secret", rainbird.WithRegistry(reg))
	require.NoError(err)
	client, err := rainbird.NewClient(cfg)
	require.NoError(err)
	defer client.Close()

	a := &app{client: client}
	result, err := a.scan()
	require.NoError(err)
	require.Equal([]supportedCommand{
		{Opcode: "02"},
		{Opcode: "60", Name: "FlowSensorRequest"},
	}, result)
}

// scanController answers CommandSupportRequests from a set of supported opcodes.
type scanController struct {
	supported map[string]bool
}

func (s *scanController) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	plaintext, _ := sip.Decrypt("secret", body)

	var frame sip.Frame
	_ = json.Unmarshal(plaintext, &frame)
	opcode := frame.Params.Data[2:4]

	support := "00"
	if s.supported[opcode] {
		support = "01"
	}
	reply := "84" + opcode + support

	rsp, _ := json.Marshal(map[string]any{"result": map[string]any{"length": 3, "data": reply}})
	msg, _ := sip.Encrypt("secret", rsp)
	_, _ = w.Write(msg)
}
