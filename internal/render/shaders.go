package render

// The lit shader handles every standard material: ambient light, one spot
// light with a soft cone edge, and FogExp2. Uniform names match the
// locations looked up in newLit.
const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragPosition;
out vec2 fragTexCoord;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragTexCoord = vertexTexCoord;
  fragNormal = mat3(matModel) * vertexNormal;
  gl_Position = matProjection * matView * worldPos;
}
`
	litFS = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform sampler2D texture0;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 ambient;
uniform vec3 spotPos;
uniform vec3 spotDir;
uniform vec3 spotColor;
uniform float spotIntensity;
uniform float spotInnerCos;
uniform float spotOuterCos;
uniform vec3 fogColor;
uniform float fogDensity;
uniform float unlit;
out vec4 finalColor;
void main() {
  vec4 tint = texture(texture0, fragTexCoord) * colDiffuse;
  vec3 color = tint.rgb;
  if (unlit < 0.5) {
    vec3 N = normalize(fragNormal);
    if (!gl_FrontFacing) N = -N;
    vec3 L = normalize(spotPos - fragPosition);
    float theta = dot(-L, normalize(spotDir));
    float cone = spotInnerCos > spotOuterCos
      ? smoothstep(spotOuterCos, spotInnerCos, theta)
      : step(spotOuterCos, theta);
    vec3 diffuse = spotColor * spotIntensity * cone * max(dot(N, L), 0.0);
    color = tint.rgb * (ambient + diffuse);
  }
  float d = length(viewPos - fragPosition);
  float f = 1.0 - exp(-(fogDensity * d) * (fogDensity * d));
  finalColor = vec4(mix(color, fogColor, clamp(f, 0.0, 1.0)), tint.a);
}
`
	skyboxVS = `#version 330
in vec3 vertexPosition;
uniform mat4 matProjection;
uniform mat4 matView;
out vec3 fragPosition;
void main() {
  fragPosition = vertexPosition;
  mat4 rotView = mat4(mat3(matView));
  vec4 clipPos = matProjection * rotView * vec4(vertexPosition, 1.0);
  gl_Position = clipPos.xyww;
}
`
	skyboxFS = `#version 330
in vec3 fragPosition;
uniform samplerCube environmentMap;
out vec4 finalColor;
void main() {
  finalColor = vec4(texture(environmentMap, fragPosition).rgb, 1.0);
}
`
)
