package models

// DailyStatistics is the aggregate archived when an operational day closes.
type DailyStatistics struct {
	Date               string  `json:"date"`
	TotalIssued        int     `json:"totalIssued"`
	TotalCalled        int     `json:"totalCalled"`
	CompletedSessions  int     `json:"completedSessions"`
	AverageWaitMinutes float64 `json:"averageWaitMinutes"`
}

type Statistics struct {
	AverageSessionMinutes float64           `json:"averageSessionMinutes"`
	AverageWaitMinutes    float64           `json:"averageWaitMinutes"`
	IssuedToday           int               `json:"issuedToday"`
	CalledToday           int               `json:"calledToday"`
	CompletedToday        int               `json:"completedToday"`
	TodayWaitMinutes      float64           `json:"todayWaitMinutes"`
	Archive               []DailyStatistics `json:"archive"`
}
