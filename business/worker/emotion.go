package worker

import (
	"context"
	"time"

	"github.com/superfeelapi/goAvatar/foundation/emotion"
	"github.com/superfeelapi/goAvatar/foundation/pubsub"
	"github.com/superfeelapi/goAvatar/foundation/session"
	"github.com/superfeelapi/goAvatar/foundation/state"
)

func (w *Worker) emotionOperation() {
	w.logger.Infow("worker: emotionOperation: G started")
	defer w.logger.Infow("worker: emotionOperation: G completed")

	defer w.state.Set(state.Emotion, false)

	acousticSub := pubsub.NewSubscriber(subscriberCapacity)
	transcriptSub := pubsub.NewSubscriber(subscriberCapacity)
	contextSub := pubsub.NewSubscriber(subscriberCapacity)
	endSub := pubsub.NewSubscriber(subscriberCapacity)

	w.broker.Subscribe(acousticTopic, acousticSub)
	w.broker.Subscribe(transcriptTopic, transcriptSub)
	w.broker.Subscribe(contextTopic, contextSub)
	w.broker.Subscribe(endTopic, endSub)

	// Latest per-session evidence. Acoustic and contextual features stick
	// around so a transcript arriving later still fuses all modalities;
	// entries live until the session's end event. Payloads for sessions
	// that no longer exist are dropped, never re-opened.
	lastAcoustic := make(map[string]*emotion.AcousticFeatures)
	lastContext := make(map[string]*emotion.ContextualFeatures)

	w.logger.Infow("worker: emotionOperation: G listening")
	for {
		select {
		case <-w.shut:
			w.logger.Infow("worker: emotionOperation: received shut signal")
			return

		case out := <-acousticSub.GetChannel():
			audio, ok := out.(AudioPayload)
			if !ok || w.acoustic == nil {
				continue
			}

			s, ok := w.sessions.Get(audio.SessionID)
			if !ok {
				continue
			}

			feats, err := w.acoustic.Extract(context.Background(), audio.Samples)
			if err != nil {
				w.logger.Errorw("worker: emotionOperation: extracting acoustic features", "session", audio.SessionID, "ERROR", err)
				continue
			}
			lastAcoustic[audio.SessionID] = &feats

			w.detect(s, emotion.Features{
				Acoustic:   &feats,
				Contextual: lastContext[audio.SessionID],
			})

		case out := <-transcriptSub.GetChannel():
			tr, ok := out.(TranscriptPayload)
			if !ok {
				continue
			}

			s, ok := w.sessions.Get(tr.SessionID)
			if !ok {
				continue
			}

			textual := emotion.ExtractTextual(tr.Transcript)

			w.detect(s, emotion.Features{
				Textual:    &textual,
				Acoustic:   lastAcoustic[tr.SessionID],
				Contextual: lastContext[tr.SessionID],
			})

		case out := <-contextSub.GetChannel():
			cx, ok := out.(ContextPayload)
			if !ok {
				continue
			}

			if _, ok := w.sessions.Get(cx.SessionID); !ok {
				continue
			}

			feats := cx.Context
			lastContext[cx.SessionID] = &feats

		case out := <-endSub.GetChannel():
			sessionID, ok := out.(string)
			if !ok {
				continue
			}

			delete(lastAcoustic, sessionID)
			delete(lastContext, sessionID)
		}
	}
}

// detect fuses the features through the session's tracker and hands the
// result to the output operations. Tracker labels are appended after any
// caller-supplied history right before classification so momentum rules
// see the session's own past detections as the most recent entries.
func (w *Worker) detect(s *session.Session, f emotion.Features) {
	if f.Contextual != nil {
		cx := *f.Contextual
		history := s.History()
		labels := make([]string, 0, len(cx.History)+len(history))
		labels = append(labels, cx.History...)
		for _, d := range history {
			labels = append(labels, string(d.Emotion))
		}
		cx.History = labels
		f.Contextual = &cx
	}

	d := w.classifier.Detect(f, time.Now())
	transition := s.Submit(d)

	now := time.Now()
	dominant, ok := s.Dominant(now)
	if !ok {
		dominant = d.Emotion
	}

	w.toAnimatorEmotionCh <- EmotionPayload{
		SessionID:  s.ID(),
		Detection:  d,
		Transition: transition,
		Dominant:   dominant,
		Stability:  s.Stability(now),
	}

	if transition != nil && w.state.Get(state.Redis) {
		w.toRedisCh <- TransitionData{
			AvatarID:   w.config.AvatarID,
			SessionID:  s.ID(),
			Emotion:    d,
			Transition: *transition,
		}
	}

	w.logger.Infow("worker: emotionOperation:", "session", s.ID(), "emotion", d.Emotion, "confidence", d.Confidence, "source", d.Source)
}
