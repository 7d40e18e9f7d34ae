package engine

import (
	"github.com/freixas/gamma-sub005/internal/diagram"
	"github.com/freixas/gamma-sub005/internal/hcode"
	"github.com/freixas/gamma-sub005/internal/relativity"
	"github.com/freixas/gamma-sub005/internal/value"
)

// command resolves a drawing command's arguments and appends the finished
// record to the output buffer. Style tags pass through unmodified for the
// external stylesheet resolver.
func (p *pass) command(in hcode.Instr) error {
	spec := in.Command

	named := make(map[string]value.Value, len(spec.Named))
	for i := len(spec.Named) - 1; i >= 0; i-- {
		named[spec.Named[i]] = p.pop()
	}
	positional := p.popN(spec.Positional)

	cmd := diagram.Command{Kind: in.Name}

	if styleVal, ok := named["style"]; ok {
		s, isStr := styleVal.AsString()
		if !isStr {
			return p.fail(in, "%s style: must be a string, got %s", in.Name, styleVal.Tag)
		}
		cmd.Style = s
		delete(named, "style")
	}

	switch in.Name {
	case "axes", "grid":
		// Default to the rest frame when no frame is given.
		var f relativity.Frame
		if len(positional) == 1 {
			got, err := value.FrameOf(positional[0])
			if err != nil {
				return p.failErr(in, err)
			}
			f = got
		}
		cmd.Args = append(cmd.Args, diagram.Arg{Key: "frame", Val: diagram.FrameArgOf(f)})

	case "hypergrid":
		// No geometry; the renderer fills the visible region.

	case "worldline":
		obs, ok := positional[0].AsObserver()
		if !ok {
			return p.fail(in, "worldline requires an observer, got %s", positional[0].Tag)
		}
		cmd.Args = append(cmd.Args, diagram.Arg{Key: "observer", Val: diagram.ObserverArgOf(obs)})

	case "event", "label":
		c, ok := positional[0].AsCoord()
		if !ok {
			return p.fail(in, "%s requires a coordinate, got %s", in.Name, positional[0].Tag)
		}
		cmd.Args = append(cmd.Args, diagram.Arg{Key: "coord", Val: diagram.CoordArg(c)})
		if textVal, ok := named["text"]; ok {
			cmd.Args = append(cmd.Args, diagram.Arg{Key: "text", Val: diagram.StringArg(textVal.Format())})
			delete(named, "text")
		}

	case "line":
		l, ok := positional[0].AsLine()
		if !ok {
			return p.fail(in, "line requires a line value, got %s", positional[0].Tag)
		}
		cmd.Args = append(cmd.Args, diagram.Arg{Key: "line", Val: diagram.LineArgOf(l)})

	case "path":
		pa, ok := positional[0].AsPath()
		if !ok {
			return p.fail(in, "path requires a path value, got %s", positional[0].Tag)
		}
		cmd.Args = append(cmd.Args, diagram.Arg{Key: "path", Val: diagram.PathArg(pa)})

	default:
		return p.fail(in, "unknown command %q", in.Name)
	}

	p.out.Commands = append(p.out.Commands, cmd)
	return nil
}
