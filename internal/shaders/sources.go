package shaders

const BoltVertex = `
#version 410 core
layout (location = 0) in vec3 aPos;
uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;
void main()
{
    gl_Position = projection * view * model * vec4(aPos, 1.0);
}
`

const BoltFragment = `
#version 410 core
out vec4 FragColor;
uniform vec3 boltColor;
void main()
{
    FragColor = vec4(boltColor, 1.0);
}
`

const ParticleVertex = `
#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aColor;
layout (location = 2) in float aSize;
uniform mat4 view;
uniform mat4 projection;
out vec3 vColor;
void main()
{
    gl_Position = projection * view * vec4(aPos, 1.0);
    gl_PointSize = aSize;
    vColor = aColor;
}
`

const ParticleFragment = `
#version 410 core
in vec3 vColor;
out vec4 FragColor;
void main()
{
    vec2 offset = gl_PointCoord - vec2(0.5);
    float dist = length(offset);
    if (dist > 0.5) {
        discard;
    }
    float falloff = 1.0 - dist * 2.0;
    FragColor = vec4(vColor, falloff * falloff);
}
`
