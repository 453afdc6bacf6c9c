package oba

// Response envelopes for the OneBusAway "where" REST API. Only the fields
// the bot reads are declared.

type stopResponse struct {
	Code int `json:"code"`
	Data struct {
		Entry struct {
			ID   string `json:"id"`
			Code string `json:"code"`
			Name string `json:"name"`
		} `json:"entry"`
	} `json:"data"`
}

type routeResponse struct {
	Code int `json:"code"`
	Data struct {
		Entry struct {
			ID        string `json:"id"`
			ShortName string `json:"shortName"`
			LongName  string `json:"longName"`
		} `json:"entry"`
	} `json:"data"`
}

type arrivalsResponse struct {
	Code int `json:"code"`
	Data struct {
		Entry struct {
			ArrivalsAndDepartures []arrivalEntry `json:"arrivalsAndDepartures"`
		} `json:"entry"`
	} `json:"data"`
}

type arrivalEntry struct {
	RouteID              string `json:"routeId"`
	VehicleID            string `json:"vehicleId"`
	ScheduledArrivalTime int64  `json:"scheduledArrivalTime"`
	PredictedArrivalTime int64  `json:"predictedArrivalTime"`
}
