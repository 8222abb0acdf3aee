/*
Package engine contains the real-time mixing engine of AirDAW.

An Engine owns a fixed number of track slots. Each Track is a sine oscillator
with mix controls (volume, pan, mute, solo) and an ordered chain of up to
eight effects. Engine.Process is the mix callback: the audio backend calls it
on its own thread once per period, and it synthesizes every audible track,
runs its effect chain, sums the result into the output buffer and refreshes
the peak/RMS meters.

Everything else (adding tracks and effects, changing parameters, toggling the
transport) is the control API, called from the UI or main goroutine. The two
sides never share a lock: flags and parameters are single atomic fields,
new tracks are published by storing the track count only after the slot is
written, and effect chains are replaced as immutable snapshots. Process
therefore never blocks and never allocates.
*/
package engine
