package responder

import (
	"bufio"
	"fmt"
	"io"

	"chatbots/internal/vocab"
)

// Chat runs the console loop until the farewell word or the end of in.
func (r *Responder) Chat(in io.Reader, out io.Writer) error {
	fmt.Fprintf(out, "Chatbot: Hello! (Type '%s' to exit.)\n", vocab.Farewell)
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "You: ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		line := sc.Text()
		if IsFarewell(line) {
			fmt.Fprintln(out, "Chatbot: "+r.Farewell())
			return nil
		}
		fmt.Fprintln(out, "Chatbot: "+r.Respond(line))
	}
}
