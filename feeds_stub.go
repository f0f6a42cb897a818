package main

// canned feeds for tests

type testTasks struct {
	records []taskRecord
	err     error
	fetches int
}

func (tt *testTasks) fetchToday(rt runtimeConfig) ([]taskRecord, error) {
	tt.fetches++
	return tt.records, tt.err
}

type testAgenda struct {
	records []agendaRecord
	err     error
	fetches int
}

func (ta *testAgenda) fetchToday(rt runtimeConfig) ([]agendaRecord, error) {
	ta.fetches++
	return ta.records, ta.err
}
