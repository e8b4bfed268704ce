package transport

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestHarnessChannel_ReceiveInit(t *testing.T) {
	in := strings.NewReader(`{"replay":"/tmp/replay.json","config":{"random_seed":42},"player_list":[1,2]}` + "\n")
	var out bytes.Buffer
	c := NewHarnessChannel(in, &out)

	info, err := c.ReceiveInit()
	if err != nil {
		t.Fatalf("ReceiveInit: %v", err)
	}
	if info.ReplayPath != "/tmp/replay.json" {
		t.Errorf("ReplayPath = %q", info.ReplayPath)
	}
	if info.Config.RandomSeed == nil || *info.Config.RandomSeed != 42 {
		t.Errorf("RandomSeed = %v", info.Config.RandomSeed)
	}
	if info.PlayerList != [2]int{1, 2} {
		t.Errorf("PlayerList = %v", info.PlayerList)
	}
}

func TestHarnessChannel_ReceiveSkipsStale(t *testing.T) {
	in := strings.NewReader(
		`{"player":0,"content":"late reply"}` + "\n" +
			`{"player":1,"content":"{\"role\":1,\"action\":\"0 0 0\"}"}` + "\n")
	var out bytes.Buffer
	c := NewHarnessChannel(in, &out)

	reply, fault, err := c.Receive(1)
	if err != nil || fault != nil {
		t.Fatalf("Receive = (%v, %v, %v)", reply, fault, err)
	}
	if reply.Player != 1 {
		t.Errorf("reply.Player = %d, want 1", reply.Player)
	}
}

func TestHarnessChannel_ReceiveFault(t *testing.T) {
	in := strings.NewReader(`{"player":-1,"content":"{\"player\":0,\"error\":1}"}` + "\n")
	var out bytes.Buffer
	c := NewHarnessChannel(in, &out)

	_, fault, err := c.Receive(1)
	if err != nil {
		t.Fatalf("Receive: %v", err)
	}
	if fault == nil || fault.Player != 0 || fault.Kind != FaultTLE {
		t.Errorf("fault = %+v, want TLE for player 0", fault)
	}
}

func TestHarnessChannel_OutboundFrames(t *testing.T) {
	var out bytes.Buffer
	c := NewHarnessChannel(strings.NewReader(""), &out)

	c.AnnounceBudget(3*time.Second, 1024)
	c.AnnounceRound(2, []int{0}, nil, nil)
	c.SendFinalResult(`{"0":1,"1":2}`, `["OK","OK"]`)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("outbound lines = %d, want 3: %q", len(lines), out.String())
	}

	var budget map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &budget); err != nil {
		t.Fatalf("budget frame not JSON: %v", err)
	}
	if budget["time"] != 3.0 || budget["length"] != 1024.0 {
		t.Errorf("budget frame = %v", budget)
	}

	var round map[string]interface{}
	if err := json.Unmarshal([]byte(lines[1]), &round); err != nil {
		t.Fatalf("round frame not JSON: %v", err)
	}
	if round["state"] != 2.0 {
		t.Errorf("round frame = %v", round)
	}
	// nil-срезы сериализуются пустыми списками, не null.
	if round["player"] == nil || round["content"] == nil {
		t.Errorf("round frame has nulls: %v", round)
	}

	var final map[string]interface{}
	if err := json.Unmarshal([]byte(lines[2]), &final); err != nil {
		t.Fatalf("final frame not JSON: %v", err)
	}
	if final["state"] != -1.0 {
		t.Errorf("final frame = %v", final)
	}
}

func TestFaultKind_String(t *testing.T) {
	cases := map[FaultKind]string{
		FaultRE:  "RE",
		FaultTLE: "TLE",
		FaultOLE: "OLE",
	}
	for k, want := range cases {
		if k.String() != want {
			t.Errorf("FaultKind(%d).String() = %q, want %q", k, k.String(), want)
		}
	}
}
