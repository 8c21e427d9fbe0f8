/*
Package runner implements the interactive loop around a grid session.

The runner reads commands through an IOHandler, applies them through a
session.Manager and presents the resulting view, side-effects and outputs.

# Key Components

  - Runner: the read-apply-render loop.
  - TextHandler: a line-based REPL with a pluggable view renderer.
  - JSONHandler: JSON Lines in (events) and out (views, actions, outputs).
  - SanitizeInput / SanitizeEvent: size, UTF-8 and control character policy
    shared with the HTTP and MCP adapters.

# Usage

	r := runner.NewRunner(
		runner.WithInputHandler(runner.NewTextHandler(os.Stdin, os.Stdout)),
	)
	if err := r.Run(ctx, manager, gridID); err != nil {
		log.Fatal(err)
	}
*/
package runner
