package worker

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/superfeelapi/goAvatar/foundation/external/animator"
	"github.com/superfeelapi/goAvatar/foundation/state"
)

func (w *Worker) animatorOperation() {
	w.logger.Infow("worker: animatorOperation: G started")
	defer w.logger.Infow("worker: animatorOperation: G completed")

	// Keeping the connection alive
	keepAlive := time.NewTicker(10 * time.Second)
	defer keepAlive.Stop()

	w.logger.Infow("worker: animatorOperation: G listening")
	for {
		select {
		case <-w.shut:
			w.logger.Infow("worker: animatorOperation: received shut signal")
			return

		case <-keepAlive.C:
			if !w.state.Get(state.Animator) {
				continue
			}
			if err := w.animator.SendData(animator.KeepAliveEvent, nil); err != nil {
				w.Shutdown(fmt.Errorf("worker: animatorOperation: keep alive: %w", err))
				return
			}

		case sessionID := <-w.newSessionCh:
			if !w.state.Get(state.Animator) {
				continue
			}
			err := w.animator.SendData(animator.SessionEvent, animator.SessionData{
				AvatarID:  w.config.AvatarID,
				SessionID: sessionID,
				ProfileID: w.config.ProfileID,
			})
			if err != nil {
				w.state.Set(state.Animator, false)
				w.logger.Errorw("worker: animatorOperation: sending session data", "ERROR", err)
				continue
			}
			w.logger.Infow("worker: animatorOperation: sent session data", "session", sessionID)

		case p := <-w.toAnimatorVoiceCh:
			if !w.state.Get(state.Animator) {
				continue
			}
			err := w.animator.SendData(animator.VoiceEvent, animator.VoiceData{
				AvatarID:        w.config.AvatarID,
				SessionID:       p.SessionID,
				AudioID:         p.AudioID,
				DataID:          uuid.New().String(),
				Characteristics: p.Characteristics,
			})
			if err != nil {
				w.state.Set(state.Animator, false)
				w.logger.Errorw("worker: animatorOperation: sending voice data", "ERROR", err)
			}

		case p := <-w.toAnimatorVisemeCh:
			if !w.state.Get(state.Animator) {
				continue
			}
			err := w.animator.SendData(animator.VisemeEvent, animator.VisemeData{
				AvatarID:  w.config.AvatarID,
				SessionID: p.SessionID,
				AudioID:   p.AudioID,
				DataID:    uuid.New().String(),
				Visemes:   p.Visemes,
			})
			if err != nil {
				w.state.Set(state.Animator, false)
				w.logger.Errorw("worker: animatorOperation: sending viseme data", "ERROR", err)
				continue
			}
			w.logger.Infow("worker: animatorOperation: sent viseme data", "session", p.SessionID, "visemes", len(p.Visemes))

		case p := <-w.toAnimatorEmotionCh:
			if !w.state.Get(state.Animator) {
				continue
			}
			err := w.animator.SendData(animator.EmotionEvent, animator.EmotionData{
				AvatarID:   w.config.AvatarID,
				SessionID:  p.SessionID,
				DataID:     uuid.New().String(),
				Emotion:    p.Detection,
				Transition: p.Transition,
				Dominant:   p.Dominant,
				Stability:  p.Stability,
			})
			if err != nil {
				w.state.Set(state.Animator, false)
				w.logger.Errorw("worker: animatorOperation: sending emotion data", "ERROR", err)
				continue
			}
			w.logger.Infow("worker: animatorOperation: sent emotion data", "session", p.SessionID, "emotion", p.Detection.Emotion)
		}
	}
}
