package responder

import (
	"bufio"
	"fmt"
	"log"
	"os"
)

// DefaultSampleSkip skips the general tags (greet, bye, help, default).
const DefaultSampleSkip = 4

// SampleInputs returns the scripted inputs of a sample transcript: a greeting, a help
// request, one question per tag after skip, an unknown keyword and the farewell.
func (r *Responder) SampleInputs(skip int) []string {
	inputs := []string{"Hello how are you", "Help me please"}
	tags := r.table.Tags()
	if skip < 0 {
		skip = 0
	}
	if skip > len(tags) {
		skip = len(tags)
	}
	for _, tag := range tags[skip:] {
		inputs = append(inputs, fmt.Sprintf("What is %s in Java?", tag))
	}
	return append(inputs, "what is icecream in java", "bye")
}

// GenerateSamples overwrites path with a User/Chatbot transcript of SampleInputs.
func (r *Responder) GenerateSamples(path string, skip int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create samples file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close samples file: %w", cerr)
		}
	}()
	w := bufio.NewWriter(f)
	inputs := r.SampleInputs(skip)
	for _, in := range inputs {
		if _, err := fmt.Fprintf(w, "User: %s\nChatbot: %s\n\n", in, r.Respond(in)); err != nil {
			return fmt.Errorf("write sample: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush samples: %w", err)
	}
	log.Printf("wrote %d sample exchanges to %s", len(inputs), path)
	return nil
}
