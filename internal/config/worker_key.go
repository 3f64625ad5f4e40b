package config

type WorkerKeyStruct struct {
	EnhanceJobsQueue     string
	CoverLetterJobsQueue string
}

var WorkerKey = &WorkerKeyStruct{
	EnhanceJobsQueue:     "enhance_jobs_queue",
	CoverLetterJobsQueue: "cover_letter_jobs_queue",
}
