package worker

import (
	"context"

	"github.com/superfeelapi/goAvatar/foundation/pubsub"
)

func (w *Worker) voiceAnalysisOperation() {
	w.logger.Infow("worker: voiceAnalysisOperation: G started")
	defer w.logger.Infow("worker: voiceAnalysisOperation: G completed")

	audioSub := pubsub.NewSubscriber(subscriberCapacity)
	w.broker.Subscribe(audioTopic, audioSub)

	w.logger.Infow("worker: voiceAnalysisOperation: G listening")
	for {
		select {
		case <-w.shut:
			w.logger.Infow("worker: voiceAnalysisOperation: received shut signal")
			return

		case out := <-audioSub.GetChannel():
			audio, ok := out.(AudioPayload)
			if !ok {
				continue
			}

			s, ok := w.sessions.Get(audio.SessionID)
			if !ok {
				continue
			}

			vc, err := s.AnalyzeBuffer(context.Background(), audio.AudioID, audio.Samples)
			if err != nil {
				w.logger.Errorw("worker: voiceAnalysisOperation: analyzing buffer", "session", audio.SessionID, "ERROR", err)
				continue
			}

			w.toAnimatorVoiceCh <- VoicePayload{
				SessionID:       audio.SessionID,
				AudioID:         audio.AudioID,
				Characteristics: vc,
			}

			frames, err := s.AnalyzeFrames(context.Background(), audio.Samples)
			if err != nil {
				w.logger.Errorw("worker: voiceAnalysisOperation: analyzing frames", "session", audio.SessionID, "ERROR", err)
				continue
			}

			w.toVisemeCh <- FramesPayload{
				SessionID: audio.SessionID,
				AudioID:   audio.AudioID,
				Frames:    frames,
			}

			w.logger.Infow("worker: voiceAnalysisOperation:", "session", audio.SessionID, "audio", audio.AudioID, "f0", vc.F0, "voiced", vc.VoicedProbability)
		}
	}
}
