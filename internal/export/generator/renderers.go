package generator

// The shared renderer modules embedded in every export. Generated TSX uses
// string concatenation instead of template literals so these sources stay
// plain Go raw strings.

const sectionComponent = `import ComponentRenderer from './ComponentRenderer';

interface SectionProps {
  id: string;
  height: number;
  styles: Record<string, unknown>;
  components: Array<{
    id: string;
    type: string;
    x: number;
    y: number;
    width: number;
    height: number;
    props: Record<string, unknown>;
    styles: Record<string, unknown>;
    zIndex: number;
  }>;
}

export default function Section({ height, styles, components }: SectionProps) {
  return (
    <section
      className="section"
      style={{
        height: height + 'px',
        ...styles as React.CSSProperties,
      }}
    >
      {components.map((component) => (
        <ComponentRenderer key={component.id} {...component} />
      ))}
    </section>
  );
}
`

// componentRenderer dispatches on the variant tag. The mapping is total over
// the declared variants; an unrecognized tag renders as empty output on
// purpose, so one malformed component cannot sink a whole exported site.
const componentRenderer = `import TextComponent from './TextComponent';
import ImageComponent from './ImageComponent';
import ButtonComponent from './ButtonComponent';
import ContainerComponent from './ContainerComponent';
import LinkComponent from './LinkComponent';
import FormComponent from './FormComponent';

interface ComponentProps {
  id: string;
  type: string;
  x: number;
  y: number;
  width: number;
  height: number;
  props: Record<string, unknown>;
  styles: Record<string, unknown>;
  zIndex: number;
}

export default function ComponentRenderer(props: ComponentProps) {
  const baseStyles: React.CSSProperties = {
    position: 'absolute',
    left: props.x + 'px',
    top: props.y + 'px',
    width: props.width + 'px',
    height: props.height + 'px',
    zIndex: props.zIndex,
    ...props.styles as React.CSSProperties,
  };

  switch (props.type) {
    case 'text':
      return <TextComponent {...props} baseStyles={baseStyles} />;
    case 'image':
      return <ImageComponent {...props} baseStyles={baseStyles} />;
    case 'button':
      return <ButtonComponent {...props} baseStyles={baseStyles} />;
    case 'container':
      return <ContainerComponent {...props} baseStyles={baseStyles} />;
    case 'link':
      return <LinkComponent {...props} baseStyles={baseStyles} />;
    case 'form':
      return <FormComponent {...props} baseStyles={baseStyles} />;
    default:
      // Unknown variant: render nothing rather than failing the site.
      return null;
  }
}
`

// variantOrder fixes the emission order of the renderer files.
var variantOrder = []string{"text", "image", "button", "container", "link", "form"}

var variantFiles = map[string]string{
	"text":      "TextComponent.tsx",
	"image":     "ImageComponent.tsx",
	"button":    "ButtonComponent.tsx",
	"container": "ContainerComponent.tsx",
	"link":      "LinkComponent.tsx",
	"form":      "FormComponent.tsx",
}

var variantRenderers = map[string]string{
	"text": `interface TextComponentProps {
  props: Record<string, unknown>;
  baseStyles: React.CSSProperties;
}

export default function TextComponent({ props, baseStyles }: TextComponentProps) {
  return (
    <div style={baseStyles}>
      {String(props.content || '')}
    </div>
  );
}
`,
	"image": `/* eslint-disable @next/next/no-img-element */
interface ImageComponentProps {
  props: Record<string, unknown>;
  baseStyles: React.CSSProperties;
}

export default function ImageComponent({ props, baseStyles }: ImageComponentProps) {
  return (
    <img
      src={String(props.src || '')}
      alt={String(props.alt || 'Image')}
      style={{ ...baseStyles, objectFit: 'cover' }}
    />
  );
}
`,
	"button": `interface ButtonComponentProps {
  props: Record<string, unknown>;
  baseStyles: React.CSSProperties;
}

export default function ButtonComponent({ props, baseStyles }: ButtonComponentProps) {
  return (
    <button
      style={baseStyles}
      onClick={() => props.href && (window.location.href = String(props.href))}
    >
      {String(props.content || 'Click me')}
    </button>
  );
}
`,
	"container": `interface ContainerComponentProps {
  props: Record<string, unknown>;
  baseStyles: React.CSSProperties;
}

export default function ContainerComponent({ baseStyles }: ContainerComponentProps) {
  return <div style={baseStyles} />;
}
`,
	"link": `interface LinkComponentProps {
  props: Record<string, unknown>;
  baseStyles: React.CSSProperties;
}

export default function LinkComponent({ props, baseStyles }: LinkComponentProps) {
  return (
    <a href={String(props.href || '#')} style={baseStyles}>
      {String(props.content || 'Link')}
    </a>
  );
}
`,
	"form": `interface FormComponentProps {
  props: Record<string, unknown>;
  baseStyles: React.CSSProperties;
}

export default function FormComponent({ props, baseStyles }: FormComponentProps) {
  const fields = (props.fields as Array<{ name: string; type: string; placeholder?: string }>) || [];

  return (
    <form style={baseStyles} onSubmit={(e) => e.preventDefault()}>
      {fields.map((field, index) => (
        <input
          key={index}
          type={field.type || 'text'}
          name={field.name}
          placeholder={field.placeholder || ''}
          style={{ display: 'block', marginBottom: '8px', width: '100%', padding: '8px' }}
        />
      ))}
      <button type="submit" style={{ padding: '8px 16px' }}>
        {String(props.submitText || 'Submit')}
      </button>
    </form>
  );
}
`,
}
