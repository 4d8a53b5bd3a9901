package worker

import "github.com/superfeelapi/goAvatar/foundation/viseme"

func (w *Worker) visemeOperation() {
	w.logger.Infow("worker: visemeOperation: G started")
	defer w.logger.Infow("worker: visemeOperation: G completed")

	w.logger.Infow("worker: visemeOperation: G listening")
	for {
		select {
		case <-w.shut:
			w.logger.Infow("worker: visemeOperation: received shut signal")
			return

		case frames := <-w.toVisemeCh:
			seq := viseme.Smooth(w.mapper.Map(frames.Frames))

			w.toAnimatorVisemeCh <- VisemePayload{
				SessionID: frames.SessionID,
				AudioID:   frames.AudioID,
				Visemes:   seq,
			}

			w.logger.Infow("worker: visemeOperation:", "session", frames.SessionID, "audio", frames.AudioID, "visemes", len(seq))
		}
	}
}
