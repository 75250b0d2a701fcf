// SPDX-License-Identifier: EPL-2.0

package saundifix_test

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/ik5/saundifix"
	"github.com/ik5/saundifix/audio"
	"github.com/ik5/saundifix/effects"
)

func ExampleProcess() {
	// one second of silence, mono at 22050 Hz
	in := audio.NewBuffer(1, 22050, 22050)

	params := effects.DefaultParameters()
	params.TrebleDB = 3

	data, err := saundifix.Process(context.Background(), in, params, saundifix.Options{})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(string(data[:4]), len(data))
	// Output:
	// RIFF 176444
}

func ExampleOutputPath() {
	fmt.Println(saundifix.OutputPath("takes/interview.mp3", "", ""))
	fmt.Println(saundifix.OutputPath("takes/interview.mp3", "done", "-v2"))
	// Output:
	// takes/interview-saundifix.wav
	// done/interview-v2.wav
}

func ExampleDecodeFile_unsupported() {
	_, err := saundifix.DecodeFile(context.Background(), "podcast.m4a", saundifix.Options{})
	fmt.Println(errors.Is(err, audio.ErrDecodeFailure), errors.Is(err, audio.ErrUnsupportedFormat))
	// Output:
	// true true
}
