package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"gotest.tools/assert"
)

var testSettings configSettings
var testlog io.Closer
var cfgFile string = "./test/config.conf"

func pidashTestMain(m *testing.M) {
	testSettings = initSettings(cfgFile)
	testlog, _ = setupLogging(testSettings, false)

	// run the tests
	code := m.Run()
	if testlog != nil {
		testlog.Close()
	}

	os.Exit(code)
}

func logCaller(pc uintptr, file string, line int, ok bool) {
	if !ok {
		file = "?"
		line = 0
	}

	fn := runtime.FuncForPC(pc)
	var fnName string
	if fn == nil {
		fnName = "?()"
	} else {
		dotName := filepath.Ext(fn.Name())
		fnName = strings.TrimLeft(dotName, ".") + "()"
	}

	log.Printf("Starting %s (%s:%d)", fnName, filepath.Base(file), line)
}

func testRuntime() (runtimeConfig, clockwork.FakeClock, commChannels) {
	// make rt for test, log the start of the test
	logCaller(runtime.Caller(1))
	rt := initTestRuntime(testSettings)
	return rt, rt.clock.(clockwork.FakeClock), rt.comms
}

func testQuit(rt runtimeConfig) {
	close(rt.comms.quit)
}

// testBlockDuration walks a fake clock forward in sleep-sized steps,
// waiting for the worker to be back asleep after every step
func testBlockDuration(clock clockwork.FakeClock, sleep time.Duration, d time.Duration) {
	for slept := time.Duration(0); slept < d; slept += sleep {
		clock.BlockUntil(1)
		clock.Advance(sleep)
	}
	clock.BlockUntil(1)
}

func effectRead(t *testing.T, c chan displayEffect) (displayEffect, error) {
	select {
	case e := <-c:
		return e, nil
	default:
		assert.Assert(t, false, "Nothing to read from effect channel")
	}
	return displayEffect{}, nil
}

func effectReads(t *testing.T, c chan displayEffect, n int) []displayEffect {
	es := make([]displayEffect, 0, n)
	for i := 0; i < n; i++ {
		e, _ := effectRead(t, c)
		es = append(es, e)
	}
	return es
}

func effectNoRead(t *testing.T, c chan displayEffect) (displayEffect, error) {
	select {
	case e := <-c:
		assert.Assert(t, false, "Got an unexpected value from effect channel: %v", e)
	default:
	}
	return displayEffect{}, nil
}

func almStateRead(t *testing.T, c chan almStateMsg) (almStateMsg, error) {
	select {
	case e := <-c:
		return e, nil
	default:
		assert.Assert(t, false, "Nothing to read from alarm channel")
	}
	return almStateMsg{}, nil
}

func feedMsgRead(t *testing.T, c chan feedMsg) (feedMsg, error) {
	select {
	case e := <-c:
		return e, nil
	default:
		assert.Assert(t, false, "Nothing to read from feeds channel")
	}
	return feedMsg{}, nil
}
