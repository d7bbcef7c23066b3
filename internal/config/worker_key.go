package config

type WorkerKeyStruct struct {
	ProgressSummaryQueue string
}

var WorkerKey = &WorkerKeyStruct{
	ProgressSummaryQueue: "progress_summary_queue",
}
