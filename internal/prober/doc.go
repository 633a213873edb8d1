// Package prober extracts metadata from imported media: duration for video
// and audio, pixel dimensions for video and photos, and a still-frame
// preview for video.
//
// Video and audio probing shells out to ffprobe/ffmpeg under strict
// timeouts; image probing decodes directly in-process. Probes never fail
// the import — on timeout or decode error they resolve to defined sentinel
// values (0 duration, 0x0 dimensions, empty preview path) and log a
// diagnostic.
package prober
