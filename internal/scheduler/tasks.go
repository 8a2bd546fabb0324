package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskCampaignRescore = "campaigns.rescore"

type CampaignRescorePayload struct {
	CampaignID string `json:"campaignId"`
	JobID      string `json:"jobId"`
}

func NewCampaignRescoreTask(payload CampaignRescorePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCampaignRescore, data), nil
}

func ParseCampaignRescorePayload(task *asynq.Task) (CampaignRescorePayload, error) {
	var payload CampaignRescorePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return CampaignRescorePayload{}, err
	}
	return payload, nil
}
